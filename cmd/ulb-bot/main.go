package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pmurley/ulb-trade-engine/internal/bot"
	"github.com/pmurley/ulb-trade-engine/internal/config"
	"github.com/pmurley/ulb-trade-engine/internal/storage"
	"github.com/pmurley/ulb-trade-engine/internal/storage/migrations"
	"github.com/pmurley/ulb-trade-engine/internal/storage/postgres"
	"github.com/pmurley/ulb-trade-engine/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	log := logger.New(cfg.LogLevel)

	history, closeHistory, err := openHistory(cfg, log)
	if err != nil {
		log.Fatal("Failed to open trade history:", err)
	}
	defer closeHistory()

	b, err := bot.New(cfg, log, history)
	if err != nil {
		log.Fatal("Failed to create bot:", err)
	}

	if err := b.Start(); err != nil {
		log.Fatal("Failed to start bot:", err)
	}

	log.Info("Bot is running. Press CTRL+C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info("Shutting down...")
	if err := b.Stop(); err != nil {
		log.Error("Error during shutdown:", err)
	}
}

// openHistory uses PostgreSQL when DATABASE_URL is set and the CSV file
// otherwise.
func openHistory(cfg *config.Config, log *logger.Logger) (storage.TradeHistoryStore, func(), error) {
	if cfg.DatabaseURL == "" {
		store, err := storage.NewTradeHistoryStorage(cfg.HistoryDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Recording trades in ", cfg.HistoryDir)
		return store, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Info("Recording trades in PostgreSQL")
	return postgres.NewTradeHistoryStore(pool), pool.Close, nil
}
