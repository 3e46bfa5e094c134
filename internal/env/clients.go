package environment

import (
	"context"
	"log/slog"

	"histobot/internal/config"
	"histobot/internal/infra/database"
	"histobot/internal/infra/migrations"
	"histobot/internal/infra/telegram"

	"github.com/pkg/errors"
)

type Clients struct {
	DB          *database.DB
	TelegramBot *telegram.Client
}

func newClients(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Clients, error) {
	db, err := provideDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	telegramBot, err := provideTelegramBot(cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Clients{
		DB:          db,
		TelegramBot: telegramBot,
	}, nil
}

func provideDB(ctx context.Context, cfg config.Config, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(ctx,
		database.WithDriver(cfg.DB.Driver),
		database.WithDSN(cfg.DB.DSN),
		database.WithMaxOpenConns(cfg.DB.MaxOpenConns),
		database.WithMaxIdleConns(cfg.DB.MaxIdleConns),
		database.WithConnMaxLifetime(cfg.DB.MaxLifetime),
		database.WithConnTimeout(cfg.DB.ConnTimeout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if err := migrations.Run(db.DB.DB, db.Driver()); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}

	logger.Info("Database ready", slog.String("driver", db.Driver()))
	return db, nil
}

func provideTelegramBot(cfg config.Config, logger *slog.Logger) (*telegram.Client, error) {
	client, err := telegram.NewClient(cfg.Telegram.BotToken, logger,
		telegram.WithRateLimit(cfg.Telegram.RateLimitRPS, cfg.Telegram.RateLimitBurst),
		telegram.WithUpdateTimeout(cfg.Telegram.UpdateTimeout),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create telegram client")
	}
	return client, nil
}
