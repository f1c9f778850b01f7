package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starmap-server/internal/auth"
	"starmap-server/internal/campaign"
	"starmap-server/internal/commander"
	"starmap-server/internal/faction"
	"starmap-server/internal/galaxy"
	"starmap-server/internal/middleware"
	"starmap-server/internal/server"
	"starmap-server/internal/shared/config"
	"starmap-server/internal/shared/database"
	"starmap-server/internal/shared/logger"
	sharedredis "starmap-server/internal/shared/redis"
	"starmap-server/internal/world"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatal("Failed to initialize configuration:", err)
	}

	logger.Init()
	appLogger := slog.With("component", "main")
	appLogger.Info("Starting starmap server",
		"environment", config.GlobalConfig.Server.Environment,
		"port", config.GlobalConfig.Server.Port,
	)

	db, err := database.Connect()
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		appLogger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := sharedredis.Connect()
	if err != nil {
		// The world cache degrades to Postgres-only; not fatal.
		appLogger.Warn("Redis unavailable, snapshot cache disabled", "error", err)
		redisClient = nil
	}
	defer redisClient.Close()

	// Services
	commanderService := commander.NewService(commander.NewRepository(db, slog.Default()), slog.Default())
	factionRegistry := faction.NewRegistry(slog.Default())
	galaxyService := galaxy.NewService(slog.Default())
	campaignService := campaign.NewService(
		campaign.NewRepository(db, slog.Default()),
		world.NewRepository(db, slog.Default()),
		galaxyService,
		factionRegistry,
		redisClient,
		slog.Default(),
	)

	oauthConfig := auth.NewOAuthConfig()
	states := auth.NewStateManager()

	routes := server.NewRoutes(db, redisClient, campaignService, commanderService, oauthConfig, states, slog.Default())
	mux := routes.Setup()

	corsMiddleware := middleware.NewCORS()
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Enabled:           config.GlobalConfig.RateLimit.Enabled,
		RequestsPerSecond: config.GlobalConfig.RateLimit.RequestsPerSecond,
		BurstSize:         config.GlobalConfig.RateLimit.BurstSize,
	})

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + config.GlobalConfig.Server.Port,
		Handler:      handler,
		ReadTimeout:  config.GlobalConfig.Server.ReadTimeout,
		WriteTimeout: config.GlobalConfig.Server.WriteTimeout,
		IdleTimeout:  config.GlobalConfig.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
	appLogger.Info("Server stopped")
}
