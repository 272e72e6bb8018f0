package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"campusmarket/internal/adapter/api"
	"campusmarket/internal/adapter/api/handler"
	apimiddleware "campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/adapter/api/router"
	"campusmarket/internal/adapter/repository"
	"campusmarket/internal/domain/service"
	"campusmarket/internal/infrastructure/cache"
	"campusmarket/internal/infrastructure/events"
	"campusmarket/internal/infrastructure/firebase"
	"campusmarket/internal/infrastructure/localauth"
	"campusmarket/internal/infrastructure/ratelimit"
	"campusmarket/internal/infrastructure/storage"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/config"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/response"
)

// authProvider is what both the Firebase client and the local provider offer.
type authProvider interface {
	usecase.AuthProvider
	apimiddleware.TokenVerifier
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)))
	} else if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); os.IsNotExist(err) {
			logger.Fatal("Service account file does not exist: %s", cfg.FirebaseServiceAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountPath))
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.Fatal("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	cartRepo := repository.NewFirestoreCartRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	feedbackRepo := repository.NewFirestoreFeedbackRepository(firestoreClient)
	transactor := repository.NewFirestoreTransactor(firestoreClient)

	var auth authProvider
	switch cfg.AuthProvider {
	case config.AuthProviderLocal:
		logger.Warn("Using local JWT authentication")
		credentialRepo := repository.NewFirestoreCredentialRepository(firestoreClient)
		auth = localauth.NewProvider(credentialRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	default:
		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase: %v", err)
		}
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase Auth: %v", err)
		}
		auth = firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	}

	var fileService service.FileUploadService
	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			logger.Fatal("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		fileService = storageClient
	} else {
		logger.Warn("STORAGE_BUCKET not set, image uploads are disabled")
	}

	feedbackCache := service.NewNoopFeedbackCache()
	if cfg.RedisAddr != "" {
		rdb, err := cache.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("Redis unavailable, feedback cache disabled: %v", err)
		} else {
			defer rdb.Close()
			feedbackCache = cache.NewRedisFeedbackCache(rdb, cfg.FeedbackCacheTTL)
		}
	}

	publisher := service.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.InitProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Warn("Kafka unavailable, order events disabled: %v", err)
		} else {
			defer producer.Close()
			publisher = events.NewKafkaPublisher(producer, cfg.KafkaOrderTopic)
		}
	}

	authUseCase := usecase.NewAuthUseCase(userRepo, auth)
	userUseCase := usecase.NewUserUseCase(userRepo, auth)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo, fileService)
	cartUseCase := usecase.NewCartUseCase(cartRepo, productRepo, userRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, userRepo, transactor, publisher, cfg.StrictOrderTransitions)
	feedbackUseCase := usecase.NewFeedbackUseCase(feedbackRepo, userRepo, feedbackCache)

	handler.Setup(
		authUseCase,
		userUseCase,
		productUseCase,
		cartUseCase,
		orderUseCase,
		feedbackUseCase,
		handler.NewImageUploader(fileService, cfg.MaxUploadBytes),
	)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if err := response.Error(c, err); err != nil {
			logger.Error("Failed to write error response: %v", err)
		}
	}

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(apimiddleware.RequestLogger())
	e.Use(apimiddleware.Metrics())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(auth)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	authLimiter := ratelimit.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := make(chan struct{})
	authLimiter.StartCleanupRoutine(stopCleanup)
	defer close(stopCleanup)

	router.Setup(e, authMiddleware, adminMiddleware, authLimiter)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
