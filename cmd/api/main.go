package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"ecofinds/internal/adapter/api"
	"ecofinds/internal/adapter/api/handler"
	apimiddleware "ecofinds/internal/adapter/api/middleware"
	"ecofinds/internal/adapter/api/router"
	"ecofinds/internal/adapter/repository"
	domainrepo "ecofinds/internal/domain/repository"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/infrastructure/auth"
	"ecofinds/internal/infrastructure/database"
	"ecofinds/internal/infrastructure/storage"
	"ecofinds/internal/usecase"
	"ecofinds/pkg/config"
	"ecofinds/pkg/logger"
	"ecofinds/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, ping, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	imageStorage, err := openImageStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	if imageStorage != nil {
		defer imageStorage.Close()
	} else {
		logger.Warn("STORAGE_DRIVER not set, image uploads are disabled")
	}

	if cfg.JWTSecret == "your-secret-key" && cfg.IsProduction() {
		log.Fatalf("JWT_SECRET must be set in production")
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)

	authUseCase := usecase.NewAuthUseCase(repos.Users, hasher, jwtManager)
	userUseCase := usecase.NewUserUseCase(repos, hasher)
	categoryUseCase := usecase.NewCategoryUseCase(repos.Categories)
	productUseCase := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Users)
	cartUseCase := usecase.NewCartUseCase(repos.Carts, repos.Products)
	orderUseCase := usecase.NewOrderUseCase(repos.Orders, repos.Carts, repos.Products)
	imageUseCase := usecase.NewImageUseCase(imageStorage)

	if err := categoryUseCase.SeedDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	handler.Setup(authUseCase, userUseCase, categoryUseCase, productUseCase, cartUseCase, orderUseCase, imageUseCase)
	handler.SetupHealthHandler(cfg.StoreDriver, ping)

	e := echo.New()
	e.HideBanner = true

	router.UseMiddleware(e, cfg.ClientOrigins, cfg.BodyLimit, cfg.UploadBodyLimit)

	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	authMiddleware := apimiddleware.NewAuthMiddleware(jwtManager)
	router.Setup(e, authMiddleware, apimiddleware.NewRateLimiter(cfg.AuthRateLimit))

	go func() {
		log.Printf("Starting server on port %s (store=%s)...", cfg.ServerPort, cfg.StoreDriver)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// openStore connects the configured store driver. ping is nil for the memory store.
func openStore(ctx context.Context, cfg *config.Config) (domainrepo.Repositories, func(context.Context) error, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return domainrepo.Repositories{}, nil, nil, err
		}
		return repository.NewPostgresRepositories(pool), pool.Ping, pool.Close, nil

	case config.StoreFirestore:
		client, err := database.ConnectFirestore(ctx, cfg.FirebaseProject, cfg.FirebaseServiceAccount)
		if err != nil {
			return domainrepo.Repositories{}, nil, nil, err
		}
		ping := func(ctx context.Context) error {
			return database.PingFirestore(ctx, client)
		}
		return repository.NewFirestoreRepositories(client), ping, func() { client.Close() }, nil

	case config.StoreMongo:
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return domainrepo.Repositories{}, nil, nil, err
		}
		ping := func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Mongo disconnect failed: %v", err)
			}
		}
		return repository.NewMongoRepositories(client, db), ping, closeFn, nil
	}

	logger.Warn("Using in-memory store, data is lost on restart")
	return repository.NewMemoryRepositories(), nil, func() {}, nil
}

// openImageStorage returns a nil interface when no storage driver is configured.
func openImageStorage(ctx context.Context, cfg *config.Config) (service.ImageStorage, error) {
	switch cfg.StorageDriver {
	case config.StorageGCS:
		client, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseServiceAccount, cfg.ClientOrigins)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.StorageMinio:
		client, err := storage.NewMinioClient(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.StorageBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return nil, nil
}
