// Package pipeline turns a directory of well-record PDFs into snapshots and
// store rows, one document at a time.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/constants"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/extract"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/pdftext"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/repository"
)

// Summary is the per-document outcome reported back to the batch runner.
type Summary struct {
	Document     string
	WellName     string
	Records      int
	Complete     bool
	Status       constants.DocumentStatus
	SnapshotPath string
	WellID       int64
}

// Processor coordinates one document end to end: read the text layer, run
// extraction, write the snapshot, persist. The repository is optional; with
// none configured the snapshot is the only output.
type Processor struct {
	Logger      *slog.Logger
	Controller  *extract.Controller
	Repo        repository.WellRepository
	SnapshotDir string
}

func NewProcessor(logger *slog.Logger, ctrl *extract.Controller, repo repository.WellRepository, snapshotDir string) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Controller: ctrl, Repo: repo, SnapshotDir: snapshotDir}
}

// ProcessDocument runs the full pipeline for one PDF. A panic anywhere in the
// document's processing is converted to an error so one malformed file cannot
// take down a batch.
func (p *Processor) ProcessDocument(ctx context.Context, pdfPath string) (sum *Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("process %s: panic: %v", pdfPath, r)
		}
	}()

	jobID := uuid.New()
	ctx = common.WithJobID(ctx, jobID.String())
	ctx = common.WithDocument(ctx, pdfPath)
	log := p.Logger.With("pdf", pdfPath, "job_id", jobID.String())

	layerTexts, err := pdftext.PageTexts(pdfPath, p.Logger)
	if err != nil {
		log.Error("pipeline.layer.failed", "err", err)
		return nil, fmt.Errorf("read text layer: %w", err)
	}

	ex := p.Controller.ExtractDocument(ctx, pdfPath, layerTexts)
	log.Info("pipeline.extract.ok",
		"well", ex.Well.WellName,
		"records", len(ex.Stimulations),
		"pages", len(ex.Pages),
		"complete", ex.Complete,
	)

	snapshotPath, err := extract.WriteSnapshot(p.SnapshotDir, ex)
	if err != nil {
		log.Error("pipeline.snapshot.failed", "err", err)
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	status := constants.StatusPartial
	if ex.Complete {
		status = constants.StatusSucceeded
	}
	sum = &Summary{
		Document:     ex.SourceDocument,
		WellName:     ex.Well.WellName,
		Records:      len(ex.Stimulations),
		Complete:     ex.Complete,
		Status:       status,
		SnapshotPath: snapshotPath,
	}

	if p.Repo != nil {
		wellID, err := p.Repo.SaveExtraction(ctx, &ex.Well, ex.Stimulations, ex.SourceDocument)
		if err != nil {
			log.Error("pipeline.persist.failed", "err", err)
			return nil, fmt.Errorf("persist extraction: %w", err)
		}
		sum.WellID = wellID
	}

	log.Info("pipeline.document.ok", "snapshot", snapshotPath, "well_id", sum.WellID)
	return sum, nil
}
