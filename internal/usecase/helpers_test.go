package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	adapterrepo "trailtrade/internal/adapter/repository"
	"trailtrade/internal/domain/entity"
	"trailtrade/internal/domain/repository"
	"trailtrade/internal/infrastructure/blobstore"
	"trailtrade/internal/infrastructure/geo"
	"trailtrade/internal/usecase"
)

type staticTokenIssuer struct{}

func (staticTokenIssuer) Generate(userID string) (string, error) {
	return "token-" + userID, nil
}

func (staticTokenIssuer) Verify(token string) (string, error) {
	return strings.TrimPrefix(token, "token-"), nil
}

type testEnv struct {
	store    *blobstore.MemoryStore
	userRepo repository.UserRepository
	gearRepo repository.GearRepository
	chatRepo repository.ChatRepository
	txRepo   repository.TransactionRepository

	auth *usecase.AuthUseCase
	gear *usecase.GearUseCase
	chat *usecase.ChatUseCase
	tx   *usecase.TransactionUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, geo.NewStaticProvider(13.7563, 100.5018, "Bangkok", "Thailand"), nil)
}

// newTestEnvWith wires the full stack over an in-memory blob store. A non-nil
// chatRepo replaces the default one, which lets tests inject failures.
func newTestEnvWith(t *testing.T, provider geo.Provider, chatRepo repository.ChatRepository) *testEnv {
	t.Helper()

	store := blobstore.NewMemoryStore()
	env := &testEnv{
		store:    store,
		userRepo: adapterrepo.NewBlobUserRepository(store),
		gearRepo: adapterrepo.NewBlobGearRepository(store),
		txRepo:   adapterrepo.NewBlobTransactionRepository(store),
	}
	if chatRepo != nil {
		env.chatRepo = chatRepo
	} else {
		env.chatRepo = adapterrepo.NewBlobChatRepository(store)
	}

	env.auth = usecase.NewAuthUseCase(env.userRepo, staticTokenIssuer{}, provider)
	env.gear = usecase.NewGearUseCase(env.gearRepo, env.userRepo)
	env.chat = usecase.NewChatUseCase(env.chatRepo, env.gearRepo, env.userRepo, env.txRepo)
	env.tx = usecase.NewTransactionUseCase(env.txRepo, env.gearRepo, env.userRepo, env.chat, usecase.NewRateDepositCalculator(0.10))
	return env
}

func (env *testEnv) register(t *testing.T, email, first string) *entity.User {
	t.Helper()
	result, err := env.auth.Register(context.Background(), usecase.RegisterInput{
		Email:     email,
		Password:  "hunter2travel",
		FirstName: first,
	})
	require.NoError(t, err)
	return result.User
}

func (env *testEnv) createGear(t *testing.T, sellerID string, price float64) *entity.GearItem {
	t.Helper()
	item, err := env.gear.Create(context.Background(), sellerID, usecase.CreateGearInput{
		Title:     fmt.Sprintf("Osprey Farpoint %d", int(price)),
		Price:     price,
		Category:  entity.CategoryBackpacks,
		Condition: entity.ConditionUsed,
		Images:    []string{"https://img.example/pack.jpg"},
		Location: entity.Location{
			City:        "Bangkok",
			Country:     "Thailand",
			Coordinates: entity.Coordinates{Latitude: 13.7563, Longitude: 100.5018},
		},
	})
	require.NoError(t, err)
	return item
}

func (env *testEnv) startChat(t *testing.T, buyerID string, gear *entity.GearItem) *entity.Chat {
	t.Helper()
	chat, err := env.chat.StartChat(context.Background(), buyerID, usecase.StartChatInput{
		GearID:   gear.ID,
		SellerID: gear.SellerID,
	})
	require.NoError(t, err)
	return chat
}
