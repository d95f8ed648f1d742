package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/export"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/repository"
)

func main() {
	_ = godotenv.Load()

	out := flag.String("out", "wells.xlsx", "output workbook path")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Database.Driver == "none" {
		log.Fatal("export needs a store; set DB_DRIVER to sqlite or postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo, closeRepo, err := repository.OpenFromConfig(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer closeRepo()

	data, err := export.NewService(repo, logger).ExportWellsXLSX(ctx)
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	logger.Info("export.written", "path", *out, "bytes", len(data))
}
