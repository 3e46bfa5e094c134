package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	environment "histobot/internal/env"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize environment
	env, err := environment.Setup(ctx)
	if err != nil {
		log.Fatalf("Failed to setup environment: %v", err)
	}

	logger := env.Logger
	logger.Info("Starting histobot application")

	// Start observability server in background
	if env.Servers.HTTP.Observability != nil {
		go func() {
			logger.Info("Starting observability server", slog.String("addr", env.Servers.HTTP.Observability.Addr))
			if err := env.Servers.HTTP.Observability.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Observability server error", slog.Any("error", err))
			}
		}()
	}

	var inflight sync.WaitGroup
	if err := startTelegramBot(ctx, env, &inflight); err != nil {
		logger.Error("Failed to start telegram bot", slog.Any("error", err))
		shutdown(env)
		os.Exit(1)
	}

	logger.Info("Bot started successfully. Press Ctrl+C to stop.")
	<-ctx.Done()

	logger.Info("Shutting down application...")
	env.Clients.TelegramBot.Stop()

	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.Config.ShutdownDuration)
	defer cancel()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("Timed out waiting for in-flight updates")
	}
	env.Clients.TelegramBot.Close()

	if err := env.Servers.HTTP.Observability.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Observability server shutdown error", slog.Any("error", err))
	}

	shutdown(env)
	logger.Info("Application stopped")
}

func shutdown(env *environment.Env) {
	for _, closer := range env.Closers {
		closer()
	}
}

func startTelegramBot(ctx context.Context, env *environment.Env, inflight *sync.WaitGroup) error {
	logger := env.Logger

	if env.Services.TelegramRouter == nil {
		return fmt.Errorf("telegram router не инициализирован")
	}

	if err := env.Clients.TelegramBot.Start(ctx); err != nil {
		return fmt.Errorf("запуск telegram клиента: %w", err)
	}

	// Устанавливаем команды для меню бота
	if err := env.Services.TelegramRouter.SetupBotCommands(); err != nil {
		logger.Error("Failed to setup bot commands", slog.Any("error", err))
	} else {
		logger.Info("Bot commands set up successfully")
	}

	updates := env.Clients.TelegramBot.GetUpdates()

	logger.Info("Started listening for updates with router...")

	// One goroutine per update. The loop itself is counted in inflight so
	// that Add never races with Wait.
	inflight.Add(1)
	go func() {
		defer inflight.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				inflight.Add(1)
				go func(update tgbotapi.Update) {
					defer inflight.Done()
					if err := env.Services.TelegramRouter.Route(context.WithoutCancel(ctx), &update); err != nil {
						logger.Error("Ошибка обработки обновления",
							slog.Int("update_id", update.UpdateID),
							slog.Any("error", err))
					}
				}(update)
			}
		}
	}()

	return nil
}
