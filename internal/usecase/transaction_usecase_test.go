package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "trailtrade/internal/adapter/repository"
	"trailtrade/internal/domain/entity"
	"trailtrade/internal/infrastructure/blobstore"
	"trailtrade/internal/infrastructure/geo"
	"trailtrade/internal/usecase"
	"trailtrade/pkg/errors"
)

func TestPlaceDepositFlow(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 100)
	chat := env.startChat(t, buyer.ID, item)
	ctx := context.Background()

	tx, err := env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{
		GearID: item.ID, ChatID: chat.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, tx.DepositAmount)
	assert.Equal(t, entity.StatusDepositPlaced, tx.Status)

	updated, err := env.chat.GetByID(ctx, chat.ID, buyer.ID)
	require.NoError(t, err)
	assert.True(t, updated.HasDeposit)
	require.NotEmpty(t, updated.Messages)

	last := updated.Messages[len(updated.Messages)-1]
	assert.True(t, last.IsSystem())
	assert.Equal(t, "A deposit of $10 has been placed.", last.Text)
}

func TestPlaceDepositRoundsUp(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 45)
	chat := env.startChat(t, buyer.ID, item)

	tx, err := env.tx.PlaceDeposit(context.Background(), buyer.ID, usecase.PlaceDepositInput{
		GearID: item.ID, ChatID: chat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, tx.DepositAmount)
}

func TestPlaceDepositRejections(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 100)
	chat := env.startChat(t, buyer.ID, item)
	ctx := context.Background()

	// The seller cannot deposit on their own listing.
	_, err := env.tx.PlaceDeposit(ctx, seller.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// A second deposit into the same thread is refused.
	_, err = env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	require.NoError(t, err)
	_, err = env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	assert.True(t, errors.Is(err, "CONFLICT"))

	// Deactivated listings take no deposits.
	inactive := false
	_, err = env.gear.Update(ctx, item.ID, seller.ID, usecase.UpdateGearInput{IsActive: &inactive})
	require.NoError(t, err)
	other := env.register(t, "sarah@example.com", "Sarah")
	otherChat := env.startChat(t, other.ID, item)
	_, err = env.tx.PlaceDeposit(ctx, other.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: otherChat.ID})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestMeetupAdvancesTransaction(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 100)
	chat := env.startChat(t, buyer.ID, item)
	ctx := context.Background()

	tx, err := env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	require.NoError(t, err)

	_, err = env.chat.SetMeetupLocation(ctx, chat.ID, seller.ID, entity.MeetupLocation{
		Address:     "Lumphini Park, main gate",
		Coordinates: entity.Coordinates{Latitude: 13.7309, Longitude: 100.5418},
	})
	require.NoError(t, err)

	advanced, err := env.tx.GetByID(ctx, tx.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusLocationShared, advanced.Status)
}

func TestCompleteBumpsCountersAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 100)
	chat := env.startChat(t, buyer.ID, item)
	ctx := context.Background()

	tx, err := env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	require.NoError(t, err)

	done, err := env.tx.Complete(ctx, tx.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	b, err := env.auth.GetUserByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.BuyCount)
	s, err := env.auth.GetUserByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.SellCount)

	updated, err := env.chat.GetByID(ctx, chat.ID, buyer.ID)
	require.NoError(t, err)
	last := updated.Messages[len(updated.Messages)-1]
	assert.Equal(t, "Transaction completed successfully!", last.Text)

	// Terminal records cannot settle twice.
	_, err = env.tx.Complete(ctx, tx.ID, seller.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
	_, err = env.tx.Cancel(ctx, tx.ID, seller.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCancelKeepsDeposit(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 100)
	chat := env.startChat(t, buyer.ID, item)
	ctx := context.Background()

	tx, err := env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	require.NoError(t, err)

	cancelled, err := env.tx.Cancel(ctx, tx.ID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 10.0, cancelled.DepositAmount)

	updated, err := env.chat.GetByID(ctx, chat.ID, buyer.ID)
	require.NoError(t, err)
	last := updated.Messages[len(updated.Messages)-1]
	assert.Equal(t, "Transaction has been cancelled.", last.Text)
}

func TestTransactionPartyOnly(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	stranger := env.register(t, "sarah@example.com", "Sarah")
	item := env.createGear(t, seller.ID, 100)
	chat := env.startChat(t, buyer.ID, item)
	ctx := context.Background()

	tx, err := env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	require.NoError(t, err)

	_, err = env.tx.GetByID(ctx, tx.ID, stranger.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = env.tx.Complete(ctx, tx.ID, stranger.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	_, err = env.tx.Cancel(ctx, tx.ID, stranger.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

// flakyChatRepo delegates to a real repository but can be switched to refuse
// writes, which is how the reconciliation path gets exercised.
type flakyChatRepo struct {
	*adapterrepo.BlobChatRepository
	failWrites bool
}

func (r *flakyChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	if r.failWrites {
		return errors.Internal("chat storage unavailable", nil)
	}
	return r.BlobChatRepository.Update(ctx, chat)
}

func TestPlaceDepositMarksReconciliationWhenChatFails(t *testing.T) {
	store := blobstore.NewMemoryStore()
	chatRepo := &flakyChatRepo{BlobChatRepository: adapterrepo.NewBlobChatRepository(store)}
	env := newTestEnvWith(t, geo.NewStaticProvider(13.7563, 100.5018, "Bangkok", "Thailand"), chatRepo)

	seller := env.register(t, "emma@example.com", "Emma")
	buyer := env.register(t, "miguel@example.com", "Miguel")
	item := env.createGear(t, seller.ID, 100)
	chat := env.startChat(t, buyer.ID, item)
	ctx := context.Background()

	chatRepo.failWrites = true
	tx, err := env.tx.PlaceDeposit(ctx, buyer.ID, usecase.PlaceDepositInput{GearID: item.ID, ChatID: chat.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNeedsReconciliation, tx.Status)

	// The deposit record survives even though the chat never heard about it.
	stored, err := env.tx.GetByID(ctx, tx.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNeedsReconciliation, stored.Status)

	unchanged, err := env.chat.GetByID(ctx, chat.ID, buyer.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.HasDeposit)

	// Once the chat store recovers, sharing the meetup point is still gated on
	// the deposit flag, so the thread stays consistent.
	chatRepo.failWrites = false
	_, err = env.chat.SetMeetupLocation(ctx, chat.ID, seller.ID, entity.MeetupLocation{Address: "Lumphini Park"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
