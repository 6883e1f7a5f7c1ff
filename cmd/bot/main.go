package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordertrack/internal/bot"
	"ordertrack/internal/browser"
	"ordertrack/internal/config"
	"ordertrack/internal/infrastructure/logger"
	"ordertrack/internal/infrastructure/mysql"
	"ordertrack/internal/kvstore"
	"ordertrack/internal/order"
	"ordertrack/internal/server"
	"ordertrack/internal/sweeper"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	store := kvstore.NewMySQLStore(db)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelInit()
	if err := store.EnsureSchema(initCtx); err != nil {
		zapLogger.Fatal("preparing key-value store", zap.Error(err))
	}

	orderModule := order.NewModule(store, zapLogger)
	settings := kvstore.NewSettingsStore(store)

	sweep := sweeper.New(orderModule.Repository, cfg.Retention.Days, cfg.Retention.SweepInterval, zapLogger, nil)
	if err := sweep.Start(); err != nil {
		zapLogger.Fatal("starting retention sweeper", zap.Error(err))
	}
	defer sweep.Stop()

	sessions := browser.NewManager(cfg.Browser.PageSize, cfg.Browser.IdleTimeout, zapLogger)
	updater := &bot.LoggingUpdater{Logger: zapLogger}

	mux := bot.NewModule(orderModule.Service, settings, sessions, updater, cfg.Bot.DevUserID, zapLogger)
	webhook := bot.NewWebhookController(mux, zapLogger)

	srv := server.New("bot-gateway", cfg.Bot.Port, webhook.Router(), zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("bot stopped gracefully")
}
