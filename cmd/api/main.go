package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

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
	"trailtrade/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	store, err := blobstore.OpenSQLite(cfg.BlobStorePath)
	if err != nil {
		log.Fatalf("Failed to open blob store at %s: %v", cfg.BlobStorePath, err)
	}
	defer store.Close()

	userRepo := repository.NewBlobUserRepository(store)
	gearRepo := repository.NewBlobGearRepository(store)
	chatRepo := repository.NewBlobChatRepository(store)
	transactionRepo := repository.NewBlobTransactionRepository(store)

	if err := directory.Seed(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed traveler directory: %v", err)
	}

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	geoProvider := geo.NewStaticProvider(cfg.GeoLatitude, cfg.GeoLongitude, cfg.GeoCity, cfg.GeoCountry)

	authUseCase := usecase.NewAuthUseCase(userRepo, tokenManager, geoProvider)
	gearUseCase := usecase.NewGearUseCase(gearRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, gearRepo, userRepo, transactionRepo)
	transactionUseCase := usecase.NewTransactionUseCase(
		transactionRepo,
		gearRepo,
		userRepo,
		chatUseCase,
		usecase.NewRateDepositCalculator(cfg.DepositRate),
	)

	handler.Setup(authUseCase, gearUseCase, chatUseCase, transactionUseCase)
	handler.SetupHealthHandler(store)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenManager)

	router.Setup(e, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
