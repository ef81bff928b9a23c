package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "staybook-backend/internal/api/grpc"
	httpapi "staybook-backend/internal/api/http"
	"staybook-backend/internal/config"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository/postgres"
	"staybook-backend/internal/security"
	"staybook-backend/internal/service"
	"staybook-backend/internal/storage"

	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Staybook Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "health_address", cfg.GetHealthAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(context.Background()); err != nil {
			logger.Error("Failed to apply schema", "error", err)
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize document storage
	documents, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Using local document storage", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	services := httpapi.Services{
		Auth:       service.NewAuthService(store.UserRepository, store.RoleRepository, tokenManager),
		Users:      service.NewUserService(store.UserRepository, store.RoleRepository),
		Properties: service.NewPropertyService(store.PropertyRepository, store.RoleRepository),
		Bookings: service.NewBookingService(
			store.BookingRepository,
			store.PropertyRepository,
			store.UserRepository,
			store.SupervisionRepository,
			emailSvc,
		),
		Availability: service.NewAvailabilityService(
			store.AvailabilityRepository,
			store.BookingRepository,
			store.PropertyRepository,
			store.SupervisionRepository,
			service.CalendarSettings{
				DefaultDays:  cfg.Booking.CalendarDefaultDays,
				MaxRangeDays: cfg.Booking.MaxRangeDays,
			},
		),
		Supervision: service.NewSupervisionService(
			store.SupervisionRepository,
			store.PropertyRepository,
			store.UserRepository,
			store.RoleRepository,
		),
		Verification: service.NewVerificationService(
			store.VerificationRepository,
			store.UserRepository,
			documents,
			service.DocumentPolicy{
				MaxBytes:     cfg.Storage.MaxFileSize << 20,
				AllowedTypes: cfg.Storage.AllowedTypes,
			},
			emailSvc,
		),
	}

	// Set up REST server
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(services, tokenManager, cfg.Server.AllowedOrigins, cfg.Storage.MaxFileSize<<20),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Set up gRPC health server
	healthLis, err := net.Listen("tcp", cfg.GetHealthAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetHealthAddress())
		log.Fatalf("Failed to listen: %v", err)
	}
	healthSrv := grpcapi.NewHealthServer(db, 10*time.Second)

	errCh := make(chan error, 2)
	go func() {
		if err := healthSrv.Serve(healthLis); err != nil {
			errCh <- fmt.Errorf("health server: %w", err)
		}
	}()
	go func() {
		logger.Info("REST server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("rest server: %w", err)
		}
	}()

	// Wait for interrupt signal or a server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		logger.Error("Server failed", "error", err)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down REST server", "error", err)
	}
	healthSrv.Stop()
	logger.Info("Server stopped. Goodbye!")
}
