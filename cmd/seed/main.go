// Command seed fills the advocates table with deterministic sample rows.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/simp-lee/advocates/internal/config"
	"github.com/simp-lee/advocates/internal/domain"
	"github.com/simp-lee/advocates/internal/module/advocate"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	count := flag.Int("count", 15, "number of advocates to insert")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		log.Fatal("failed to setup logger: ", err)
	}
	defer logger.Close()

	db, err := config.SetupDatabase(&cfg.Database, logger.Logger)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := db.AutoMigrate(&domain.Advocate{}); err != nil {
		logger.Error("auto migrate failed", slog.Any("error", err))
		return
	}

	base := time.Now().UTC().Truncate(time.Second).Add(-time.Duration(*count) * time.Minute)
	repo := advocate.NewAdvocateRepository(db)
	if err := advocate.Seed(context.Background(), repo, *count, base); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		return
	}

	logger.Info("seed completed", slog.Int("count", *count))
}
