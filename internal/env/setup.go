package environment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"histobot/internal/config"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type closer func()

type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Servers  *Servers
	Clients  *Clients
	Services *Services

	Closers []closer
}

func Setup(ctx context.Context) (*Env, error) {
	// Загружаем .env файл если он существует (игнорируем ошибки - файл может не существовать)
	_ = godotenv.Load()

	var cfg config.Config
	err := envconfig.Process(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("env processing: %w", err)
	}

	var e Env

	logger, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	shutdownTracing, err := initTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("initTracing: %w", err)
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint != "" {
		logger.Info("Tracing enabled", slog.String("endpoint", cfg.Tracing.Endpoint))
	}

	clients, err := newClients(ctx, cfg, logger)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("newClients: %w", err)
	}

	services, err := newServices(ctx, clients, &cfg, logger)
	if err != nil {
		_ = clients.DB.Close()
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("newServices: %w", err)
	}

	servers := newServers(ctx, cfg, logger, clients)

	e.Servers = servers
	e.Config = &cfg
	e.Logger = logger
	e.Clients = clients
	e.Services = services
	e.Closers = []closer{
		func() {
			if err := clients.DB.Close(); err != nil {
				logger.Error("Failed to close database", slog.Any("error", err))
			}
		},
		func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				logger.Error("Failed to flush traces", slog.Any("error", err))
			}
		},
	}

	return &e, nil
}
