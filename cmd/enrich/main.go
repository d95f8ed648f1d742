package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/enrich"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/repository"
)

func main() {
	_ = godotenv.Load()

	onlyMissing := flag.Bool("only-missing", true, "skip wells that already carry an enrichment URL")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Database.Driver == "none" {
		log.Fatal("enrichment needs a store; set DB_DRIVER to sqlite or postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo, closeRepo, err := repository.OpenFromConfig(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer closeRepo()

	client := enrich.NewClient(cfg.Enrich.BaseURL, cfg.Enrich.RequestDelay, cfg.Enrich.Timeout, logger)

	wells, err := repo.ListWells(ctx)
	if err != nil {
		log.Fatalf("listing wells: %v", err)
	}

	var updated, skipped, missed int
	for _, w := range wells {
		if ctx.Err() != nil {
			break
		}
		if *onlyMissing && w.DrillingEdgeURL != "" {
			skipped++
			continue
		}

		api := enrich.NormalizeAPI(w.APINumber)
		lookupCtx, cancel := common.WithTimeout(ctx, cfg.Enrich.Timeout)
		res, err := client.Lookup(lookupCtx, api, w.WellName)
		cancel()
		if err != nil {
			logger.Error("enrich.lookup.failed", "well_id", w.ID, "error", err)
			missed++
			continue
		}
		if res == nil {
			logger.Info("enrich.lookup.empty", "well_id", w.ID, "api", api, "well", w.WellName)
			missed++
			continue
		}

		if err := repo.UpdateEnrichment(ctx, w.ID, res.Update()); err != nil {
			logger.Error("enrich.update.failed", "well_id", w.ID, "error", err)
			missed++
			continue
		}
		updated++
		logger.Info("enrich.well.ok",
			"well_id", w.ID, "url", res.URL,
			"status", res.WellStatus, "oil_bbl", res.LatestOilBBL, "gas_mcf", res.LatestGasMCF,
		)

		// polite gap between wells, on top of the client's per-request delay
		select {
		case <-ctx.Done():
		case <-time.After(cfg.Enrich.RequestDelay):
		}
	}

	logger.Info("enrich.done", "updated", updated, "skipped", skipped, "missed", missed)
}
