package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/api"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/catalog"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/dialogue"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/leads"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/llm"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/monitoring"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/pool"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/session"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/telegram"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logx.InitializeLogger(cfg.App.LogDir)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info(ctx, "Starting real estate assistant",
		logx.KV("version", cfg.App.Version),
		logx.KV("environment", cfg.App.Environment))

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	logger.Info(ctx, "Catalog loaded", logx.KV("objects", cat.Len()))

	sessions, poolManager, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	if poolManager != nil {
		defer poolManager.Close()
	}

	leadStore, err := buildLeadStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize lead store: %v", err)
	}

	metrics := monitoring.New()
	client := llm.NewYandex(cfg.Yandex, logger)
	engine := dialogue.NewEngine(cat, sessions, leadStore, client, logger, metrics)

	if cfg.API.Enabled {
		router := api.NewRouter(cfg, logger, engine, leadStore, metrics)
		go func() {
			if err := router.Run(ctx); err != nil {
				logger.Error(ctx, "API server failed", logx.KV("error", err.Error()))
				cancel()
			}
		}()
		logger.Info(ctx, "API server started",
			logx.KV("host", cfg.API.Host),
			logx.KV("port", cfg.API.Port))
	}

	if cfg.Telegram.Enabled {
		bot, err := telegram.New(&cfg.Telegram, engine, logger)
		if err != nil {
			log.Fatalf("Failed to initialize telegram bot: %v", err)
		}
		go func() {
			if err := bot.Start(ctx); err != nil {
				logger.Error(ctx, "Telegram transport failed", logx.KV("error", err.Error()))
				cancel()
			}
		}()
		logger.Info(ctx, "Telegram transport started")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down")
	cancel()
	time.Sleep(time.Second)
}

func buildSessionStore(ctx context.Context, cfg *config.Config, logger *logx.Logger) (session.Store, *pool.Manager, error) {
	if cfg.Session.StoreType != "redis" {
		return session.NewInmem(), nil, nil
	}

	manager := pool.NewManager(&cfg.Session, logger)
	client, err := manager.GetClient(ctx, "default")
	if err != nil {
		return nil, nil, err
	}
	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	return session.NewRedis(client, ttl), manager, nil
}

func buildLeadStore(cfg *config.Config, logger *logx.Logger) (leads.Store, error) {
	switch cfg.Leads.StoreType {
	case "memory":
		return leads.NewInmem(), nil
	case "supabase":
		return leads.NewSupabase(cfg.Leads, logger)
	default:
		return leads.NewFile(cfg.Leads.FilePath, logger)
	}
}
