package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/zone-cup/brackets"
	"github.com/Dosada05/zone-cup/config"
	"github.com/Dosada05/zone-cup/db"
	"github.com/Dosada05/zone-cup/handlers"
	"github.com/Dosada05/zone-cup/repositories"
	"github.com/Dosada05/zone-cup/routes"
	"github.com/Dosada05/zone-cup/services"
	"github.com/Dosada05/zone-cup/storage"
)

// @title Zone Cup API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("driver", cfg.DatabaseDriver),
		slog.Int("zones", cfg.ZoneCount),
	)

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
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

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err = db.Migrate(startupCtx, dbConn); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database ready")

	// Хранилище логотипов необязательно: без R2 загрузка логотипов отвечает 503.
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewR2Uploader(startupCtx, storage.R2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Warn("R2 is not configured, team logo uploads are disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()

	teamRepo := repositories.NewSQLTeamRepository(dbConn, cfg.DatabaseDriver)
	zoneRepo := repositories.NewSQLZoneRepository(dbConn, cfg.DatabaseDriver)
	fixtureRepo := repositories.NewSQLFixtureRepository(dbConn, cfg.DatabaseDriver)
	settingsRepo := repositories.NewSQLSettingsRepository(dbConn, cfg.DatabaseDriver)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey, logger)
	rulesService := services.NewRulesService(dbConn, settingsRepo, wsHub, logger)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	assignmentService := services.NewAssignmentService(dbConn, zoneRepo, teamRepo, fixtureRepo, settingsRepo, rng, wsHub, logger)
	seedingService := services.NewSeedingService(dbConn, zoneRepo, fixtureRepo, settingsRepo, cfg.MinSeededZones, wsHub, logger)
	standingsService := services.NewStandingsService(zoneRepo, teamRepo, fixtureRepo, settingsRepo)
	playoffService := services.NewPlayoffService(dbConn, zoneRepo, teamRepo, fixtureRepo, settingsRepo, wsHub, logger)
	matchService := services.NewMatchService(dbConn, fixtureRepo, wsHub, logger)
	tournamentService := services.NewTournamentService(zoneRepo, teamRepo, fixtureRepo, settingsRepo, uploader, logger)

	if err = assignmentService.EnsureZones(startupCtx, cfg.ZoneCount); err != nil {
		logger.Error("failed to create zones", slog.Any("error", err))
		os.Exit(1)
	}

	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Rules:      handlers.NewRulesHandler(rulesService),
		Teams:      handlers.NewTeamHandler(teamService),
		Zones:      handlers.NewZoneHandler(assignmentService, seedingService, standingsService),
		Fixtures:   handlers.NewFixtureHandler(matchService, playoffService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSOrigins, logger),
	}, authService, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
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
