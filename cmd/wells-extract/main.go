package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/constants"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/extract"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/ocr"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/pipeline"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/repository"
)

func main() {
	_ = godotenv.Load()

	var (
		pdfDir      = flag.String("dir", "", "directory of well-record PDFs (default PDF_DIR)")
		snapshotDir = flag.String("out", "", "snapshot output directory (default SNAPSHOT_DIR)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	if *pdfDir == "" {
		*pdfDir = cfg.Paths.PDFDir
	}
	if *snapshotDir == "" {
		*snapshotDir = cfg.Paths.SnapshotDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo, closeRepo, err := repository.OpenFromConfig(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("opening store", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	gateway := ocr.NewGateway(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.Language,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		PSM:           cfg.OCR.PSM,
		OEM:           cfg.OCR.OEM,
	}, logger)

	controller := extract.NewController(extract.Config{
		MinTextChars: cfg.Extract.MinTextChars,
		FieldWindow:  cfg.Extract.FieldWindow,
		SampleFirst:  cfg.Extract.SampleFirst,
		SampleLast:   cfg.Extract.SampleLast,
		SampleStep:   cfg.Extract.SampleStep,
	}, gateway, logger)

	processor := pipeline.NewProcessor(logger, controller, repo, *snapshotDir)
	runner := pipeline.NewRunner(logger, processor, cfg.Extract.Workers)

	result, err := runner.Run(ctx, *pdfDir)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	for _, s := range result.Succeeded {
		fmt.Printf("%-9s %-40s well=%q records=%d snapshot=%s\n",
			s.Status, s.Document, s.WellName, s.Records, s.SnapshotPath)
	}
	for path, ferr := range result.Failed {
		fmt.Printf("%-9s %-40s error=%v\n", constants.StatusFailed, path, ferr)
	}
	if len(result.Failed) > 0 && len(result.Succeeded) == 0 {
		os.Exit(1)
	}
}
