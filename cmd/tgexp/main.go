package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tgexp/internal/amqp"
	"tgexp/internal/bot"
	"tgexp/internal/config"
	"tgexp/internal/core"
	applog "tgexp/internal/log"
	"tgexp/internal/store"
)

func main() {
	logger := applog.New(slog.LevelInfo, applog.ComponentApp)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	st, err := store.Open(store.Config{
		Type:         store.Backend(cfg.DataBackend),
		DataDir:      cfg.DataDir,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize ledger store",
			applog.FieldBackend, cfg.DataBackend,
			applog.FieldError, err)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("Ledger store initialized", applog.FieldBackend, cfg.DataBackend)

	// AMQP is optional; without it the bot simply skips export events. The
	// worker reads positions back by id, so export needs the sqlite backend.
	var events bot.EventPublisher
	if cfg.ExportEnabled() && store.Backend(cfg.DataBackend) != store.SQLiteBackend {
		logger.Warn("AMQP is configured but export requires the sqlite backend, skipping export events",
			applog.FieldBackend, cfg.DataBackend)
	} else if cfg.ExportEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without export events",
				applog.FieldError, err)
		} else {
			defer client.Close()
			events = client
			logger.Info("AMQP client initialized",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	b, err := bot.New(cfg.BotToken, st, core.NewParser(cfg.Currency), events, logger.WithComponent(applog.ComponentBot))
	if err != nil {
		logger.Error("Failed to create bot", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Starting tgexp", "currency", cfg.Currency, applog.FieldBackend, cfg.DataBackend)
	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Bot stopped gracefully")
}
