package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "anamola-backend/internal/api/http"
	"anamola-backend/internal/config"
	"anamola-backend/internal/identity"
	"anamola-backend/internal/logger"
	"anamola-backend/internal/payment"
	"anamola-backend/internal/repository/postgres"
	"anamola-backend/internal/service"
)

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
	logger.Info("Starting Anamola Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Identity configuration", "type", cfg.Identity.Type)
	logger.Info("Payment configuration", "type", cfg.Payment.Type, "currency", cfg.Payment.Currency)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Identity Store
	var identityStore identity.Store
	switch cfg.Identity.Type {
	case "firebase":
		fb, err := identity.NewFirebaseStore(context.Background(), cfg.Identity.CredentialsFile, cfg.Identity.APIKey)
		if err != nil {
			logger.Error("Failed to initialize firebase identity store", "error", err)
			log.Fatalf("Failed to initialize firebase identity store: %v", err)
		}
		identityStore = fb
	default:
		logger.Info("Using local identity store")
		identityStore = identity.NewLocalStore(cfg.Identity.JWTSecret, time.Duration(cfg.Identity.TokenExpiry)*time.Minute)
	}

	// Initialize Payment Provider
	var provider payment.Provider
	switch cfg.Payment.Type {
	case "stripe":
		provider = payment.NewStripeProvider(cfg.Payment.SecretKey)
	default:
		logger.Info("Using mock payment provider")
		provider = payment.NewMockProvider()
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	authSvc := service.NewAuthService(identityStore, store.Members, store.Activities)
	activationSvc := service.NewActivationService(
		provider,
		identityStore,
		store.Members,
		store.Memberships,
		store.Activities,
		emailSvc,
		cfg.Payment,
		cfg.Frontend.URL,
	)
	memberSvc := service.NewMemberService(
		store.Members,
		store.Memberships,
		store.News,
		store.Events,
		store.Registrations,
		store.Activities,
	)
	newsSvc := service.NewNewsService(store.News)
	eventSvc := service.NewEventService(store.Events)
	adminSvc := service.NewAdminService(
		store.Members,
		store.Memberships,
		store.News,
		store.Events,
		store.Activities,
	)

	// Initialize HTTP handlers and router
	handlers := httpapi.Handlers{
		Auth:    httpapi.NewAuthHandler(authSvc),
		Payment: httpapi.NewPaymentHandler(activationSvc),
		Member:  httpapi.NewMemberHandler(memberSvc),
		News:    httpapi.NewNewsHandler(newsSvc),
		Event:   httpapi.NewEventHandler(eventSvc),
		Admin:   httpapi.NewAdminHandler(adminSvc),
		Webhook: httpapi.NewWebhookHandler(cfg.Payment.WebhookSecret),
	}
	mw := httpapi.NewMiddleware(identityStore, store.Members, cfg.Frontend.URL)
	router := httpapi.NewRouter(handlers, mw)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
