package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitpulse/athlete-tracker/config"
	"github.com/fitpulse/athlete-tracker/db"
	"github.com/fitpulse/athlete-tracker/handlers"
	"github.com/fitpulse/athlete-tracker/live"
	appMiddleware "github.com/fitpulse/athlete-tracker/middleware"
	"github.com/fitpulse/athlete-tracker/repositories"
	api "github.com/fitpulse/athlete-tracker/routes"
	"github.com/fitpulse/athlete-tracker/services"
	"github.com/fitpulse/athlete-tracker/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// How often the hub re-broadcasts a fresh leaderboard snapshot so idle
// dashboards converge even without mutations.
const leaderboardRefreshInterval = 60 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Photo storage is optional: without R2 credentials athlete photo
	// uploads return 503 and everything else works.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 not configured, athlete photo uploads disabled")
	}

	hub := live.NewHub()
	go hub.Run()
	logger.Info("leaderboard hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	athleteRepo := repositories.NewPostgresAthleteRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	athleteService := services.NewAthleteService(athleteRepo, uploader)
	scoreService := services.NewScoreService(scoreRepo, athleteRepo)
	leaderboardService := services.NewLeaderboardService(athleteRepo, scoreRepo)
	logger.Info("services initialized")

	// Periodic refresh keeps connected dashboards current even when all
	// mutations happen out of band.
	go func() {
		ticker := time.NewTicker(leaderboardRefreshInterval)
		defer ticker.Stop()
		for range ticker.C {
			entries, err := leaderboardService.Compute(context.Background())
			if err != nil {
				logger.Error("periodic leaderboard refresh failed", slog.Any("error", err))
				continue
			}
			hub.BroadcastLeaderboard(entries)
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	athleteHandler := handlers.NewAthleteHandler(athleteService)
	scoreHandler := handlers.NewScoreHandler(scoreService, leaderboardService, hub)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)
	logger.Info("HTTP handlers initialized")

	authenticator := appMiddleware.NewAuthenticator(cfg.JWTSecretKey)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		cfg.CORSAllowedOrigins,
		authHandler,
		athleteHandler,
		scoreHandler,
		leaderboardHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
