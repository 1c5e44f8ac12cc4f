package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dayhub-backend/config"
	_ "dayhub-backend/docs" // Important for Swagger
	v1 "dayhub-backend/internal/delivery/http/v1"
	"dayhub-backend/internal/repository/postgres"
	"dayhub-backend/internal/usecase"
	"dayhub-backend/pkg/database"
	"dayhub-backend/pkg/email"
	"dayhub-backend/pkg/geo"
	"dayhub-backend/pkg/logger"
	"dayhub-backend/pkg/redis"
	"dayhub-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           DayHub Backend API
// @version         1.0
// @description     Interpreter directory and booking backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting dayhub backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting and geocode caching degrade
	// gracefully without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	interpreterRepo := postgres.NewInterpreterRepository(dbPool)
	reviewRepo := postgres.NewReviewRepository(dbPool)
	bookingRepo := postgres.NewBookingRepository(dbPool)
	savedSearchRepo := postgres.NewSavedSearchRepository(dbPool)
	favoriteRepo := postgres.NewFavoriteRepository(dbPool)
	availabilityRepo := postgres.NewAvailabilityRepository(dbPool)
	loginTokenRepo := postgres.NewLoginTokenRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - magic-link login will be unavailable")
	}

	// 7. Setup Geocoder and Object Store
	geocoder := geo.NewHTTPGeocoder(cfg.GeocoderBaseURL, redis.Client())

	var objectStore *storage.ObjectStore
	storageCfg := storage.NewClientConfigFromEnv()
	if storageCfg.IsConfigured() {
		objectStore, err = storage.NewObjectStore(context.Background(), storageCfg)
		if err != nil {
			logger.Log.Error("Failed to initialize object store", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("Object storage not configured - file uploads will be unavailable")
	}

	// 8. Setup UseCases
	validate := validator.New()
	interpreterUC := usecase.NewInterpreterUsecase(interpreterRepo, bookingRepo, geocoder, validate)
	csvUC := usecase.NewCSVUsecase(interpreterRepo)
	authUC := usecase.NewAuthUsecase(interpreterRepo, loginTokenRepo, emailService, cfg)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, interpreterRepo, validate)
	bookingUC := usecase.NewBookingUsecase(bookingRepo, interpreterRepo, validate)
	savedSearchUC := usecase.NewSavedSearchUsecase(savedSearchRepo, favoriteRepo, interpreterRepo, validate)
	availabilityUC := usecase.NewAvailabilityUsecase(availabilityRepo, validate)
	uploadUC := usecase.NewUploadUsecase(interpreterRepo, objectStore)

	// 9. Background cleanup of expired login tokens
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := loginTokenRepo.DeleteExpired(ctx); err != nil {
				logger.Log.Warn("Login token cleanup failed", "error", err)
			} else if n > 0 {
				logger.Log.Info("Expired login tokens removed", "count", n)
			}
			cancel()
		}
	}()

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		InterpreterUC:  interpreterUC,
		CSVUC:          csvUC,
		AuthUC:         authUC,
		ReviewUC:       reviewUC,
		BookingUC:      bookingUC,
		SavedSearchUC:  savedSearchUC,
		AvailabilityUC: availabilityUC,
		UploadUC:       uploadUC,
		Geocoder:       geocoder,
		Config:         cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
