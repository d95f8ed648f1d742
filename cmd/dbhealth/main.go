package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	repo "github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Database.Driver == "none" {
		log.Println("DB_DRIVER=none, nothing to check")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.Default()

	// driver-level ping first to catch DSN issues before touching the schema
	if cfg.Database.Driver == "postgres" {
		pool, err := repo.OpenPostgres(ctx, repo.Config{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			log.Fatalf("opening DB: %v", err)
		}
		err = repo.HealthCheck(ctx, pool, 1*time.Second, logger)
		pool.Close()
		if err != nil {
			log.Fatalf("DB health: FAIL (%v)", err)
		}
	}

	r, closeRepo, err := repo.OpenFromConfig(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("opening repository: %v", err)
	}
	defer closeRepo()

	wells, err := r.ListWells(ctx)
	if err != nil {
		log.Fatalf("listing wells: %v", err)
	}
	log.Println("DB health: OK")
	log.Printf("wells count: %d", len(wells))
	for _, w := range wells {
		log.Printf("- [%d] %s (file %s)", w.ID, w.WellName, w.FileNumber)
	}
}
