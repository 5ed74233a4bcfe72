package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "toolrental-backend/internal/api/grpc"
	httpapi "toolrental-backend/internal/api/http"
	"toolrental-backend/internal/clock"
	"toolrental-backend/internal/config"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository/postgres"
	"toolrental-backend/internal/security"
	"toolrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "configs/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Tool Rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http_address", cfg.GetServerAddress(), "grpc_address", cfg.GetGRPCAddress(), "timezone", cfg.Booking.Timezone)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := postgres.Open(connectCtx, cfg.GetDatabaseConnectionString(), cfg.Database.MaxOpenConn)
	cancel()
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Notifications
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	if cfg.SendGrid.APIKey == "" {
		logger.Warn("SendGrid API key not set, emails are disabled")
	}
	pushSvc, err := service.NewPushService(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.AdminTopic)
	if err != nil {
		logger.Error("Failed to initialize push notifications, continuing without them", "error", err)
		pushSvc = service.NewNoopPushService()
	}

	// Initialize Services
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	toolSvc := service.NewToolService(store.ToolRepository, cfg.Booking.DefaultPageSize)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.ToolRepository,
		store.CustomerRepository,
		emailSvc,
		pushSvc,
		clock.NewSystem(),
		cfg.Location(),
		cfg.Booking.MaxDays,
	)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	adminSvc := service.NewAdminService(store.BookingRepository, store.StatsRepository, cfg.Booking.DefaultPageSize)
	authSvc := service.NewAuthService(cfg.Auth.Admins, tokenManager)

	// HTTP API
	router := httpapi.NewRouter(httpapi.Handlers{
		Tools:     httpapi.NewToolHandler(toolSvc, bookingSvc),
		Bookings:  httpapi.NewBookingHandler(bookingSvc),
		Customers: httpapi.NewCustomerHandler(customerSvc),
		Admin:     httpapi.NewAdminHandler(adminSvc),
		Auth:      httpapi.NewAuthHandler(authSvc),
		Health:    httpapi.NewHealthHandler(db),
	}, tokenManager, cfg.Server.AllowedOrigins)

	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// gRPC health
	healthChecker := grpcapi.NewHealthChecker(db, 10*time.Second)
	go healthChecker.Run(ctx)
	grpcServer := grpcapi.NewServer(healthChecker)
	if addr := cfg.GetGRPCAddress(); addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", addr)
			log.Fatalf("Failed to listen: %v", err)
		}
		go func() {
			logger.Info("gRPC health server listening", "address", addr)
			if err := grpcServer.Serve(lis); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("Server error", "error", err)
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("Server stopped. Goodbye!")
}
