package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hiper-bot/internal/api"
	"hiper-bot/internal/api/handlers"
	"hiper-bot/internal/repository"
	"hiper-bot/internal/service"
	"hiper-bot/pkg/auth"
	"hiper-bot/pkg/config"
	"hiper-bot/pkg/logger"
	"hiper-bot/pkg/postgres"
	"hiper-bot/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server with the web chat",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	appLogger := a.logger
	appLogger.Info("Starting Hiper Bot service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := service.NopRecorder()
	var lister handlers.LookupLister
	if a.cfg.Database.Enabled {
		db, err := postgres.NewPool(ctx, &a.cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		lookupRepo := repository.NewLookupRepository(db, appLogger)
		if err := lookupRepo.EnsureSchema(ctx); err != nil {
			appLogger.Fatal("Failed to prepare analytics schema", zap.Error(err))
		}
		recorder = lookupRepo
		lister = lookupRepo
	} else {
		appLogger.Info("Keyword analytics disabled")
	}

	registry := service.NewSessionRegistry(a.cfg.Session.TTL, appLogger)
	go registry.Run(ctx)

	warnDefaultSecret(a.cfg, appLogger)
	jwtManager := auth.NewJWTManager(a.cfg.JWT.SecretKey, a.cfg.JWT.Expiration)
	chatService := service.NewChatService(a.resolver, recorder, appLogger)

	app := api.SetupRouter(api.Handlers{
		Session:   handlers.NewSessionHandler(registry, jwtManager, a.warnings, appLogger),
		Chat:      handlers.NewChatHandler(chatService, registry, appLogger),
		Relevance: handlers.NewRelevanceHandler(a.relevance, appLogger),
		Stats:     handlers.NewStatsHandler(lister, appLogger),
	}, web.Static(), &a.cfg.Server, jwtManager, appLogger)

	go func() {
		addr := ":" + a.cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
	return nil
}

func warnDefaultSecret(cfg *config.Config, appLogger *zap.Logger) {
	if cfg.UsesDefaultJWTSecret() {
		appLogger.Warn("JWT_SECRET_KEY is not set, session tokens are signed with the default secret")
	}
}
