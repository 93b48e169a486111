package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailtrade/internal/adapter/api"
	"trailtrade/internal/adapter/api/handler"
	apimiddleware "trailtrade/internal/adapter/api/middleware"
	"trailtrade/internal/adapter/api/router"
	"trailtrade/internal/adapter/repository"
	"trailtrade/internal/infrastructure/auth"
	"trailtrade/internal/infrastructure/blobstore"
	"trailtrade/internal/infrastructure/directory"
	"trailtrade/internal/infrastructure/geo"
	"trailtrade/internal/usecase"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store := blobstore.NewMemoryStore()
	userRepo := repository.NewBlobUserRepository(store)
	gearRepo := repository.NewBlobGearRepository(store)
	chatRepo := repository.NewBlobChatRepository(store)
	transactionRepo := repository.NewBlobTransactionRepository(store)

	require.NoError(t, directory.Seed(context.Background(), userRepo))

	tokenManager := auth.NewTokenManager("test-secret", 3600)
	geoProvider := geo.NewStaticProvider(13.7563, 100.5018, "Bangkok", "Thailand")

	authUseCase := usecase.NewAuthUseCase(userRepo, tokenManager, geoProvider)
	gearUseCase := usecase.NewGearUseCase(gearRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, gearRepo, userRepo, transactionRepo)
	transactionUseCase := usecase.NewTransactionUseCase(
		transactionRepo, gearRepo, userRepo, chatUseCase, usecase.NewRateDepositCalculator(0.10),
	)

	handler.Setup(authUseCase, gearUseCase, chatUseCase, transactionUseCase)
	handler.SetupHealthHandler(store)

	e := echo.New()
	e.Validator = api.NewValidator()
	router.Setup(e, apimiddleware.NewAuthMiddleware(tokenManager))
	return e
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")
}

func TestStorageHealth(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/storage-health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginAndGetProfile(t *testing.T) {
	e := newTestServer(t)

	// The seeded directory users log in with the default password.
	login := `{"email":"emma@example.com","password":"` + directory.DefaultPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(login))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID                string `json:"id"`
				VerificationLevel int    `json:"verification_level"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "u-emma", envelope.Data.User.ID)
	assert.Equal(t, 3, envelope.Data.User.VerificationLevel)

	req = httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emma@example.com")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/gear", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
