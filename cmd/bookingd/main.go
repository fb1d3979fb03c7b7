package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointment-booking-backend/config"
	"appointment-booking-backend/internal/api"
	"appointment-booking-backend/internal/db"
	"appointment-booking-backend/internal/engine"
	"appointment-booking-backend/internal/notification"
	"appointment-booking-backend/internal/schedule"
	"appointment-booking-backend/internal/store"
	"appointment-booking-backend/internal/sweeper"
)

func main() {
	logger := log.New(os.Stdout, "booking-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	window, err := schedule.NewWindow(cfg.BusinessHours.Open, cfg.BusinessHours.Close, cfg.BusinessHours.SlotMinutes)
	if err != nil {
		logger.Fatalf("invalid business hours configuration: %v", err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("booking store initialized")

	// Confirmation emails run on a pool outside any store transaction.
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, cfg.Mailer)
	workerPool.Start(ctx)

	schedEngine := engine.New(appStore, window,
		engine.WithNotifier(workerPool),
		engine.WithStoreTimeout(time.Duration(cfg.Server.StoreTimeoutSeconds)*time.Second),
	)

	// Mark elapsed bookings done in the background.
	sweepSvc := sweeper.NewService(cfg.Sweeper, appStore)
	go sweepSvc.Run(ctx)

	router := api.NewRouter(schedEngine, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
