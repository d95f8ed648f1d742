package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

// EnrichmentUpdate carries the production-lookup columns written after the
// initial extraction pass.
type EnrichmentUpdate struct {
	DrillingEdgeURL string
	WellStatus      string
	WellType        string
	ClosestCity     string
	LatestOilBBL    *float64
	LatestGasMCF    *float64
	LatestProdLabel string
}

// WellRepository persists extraction results and serves them back for
// enrichment and export.
//
// SaveExtraction reuses an existing well row matched by file number, else by
// API number, and inserts one otherwise; the stimulation records are always
// appended as new child rows in the same transaction. Reprocessing a document
// therefore duplicates its stimulation rows, which keeps the write path
// simple and leaves the history inspectable.
type WellRepository interface {
	SaveExtraction(ctx context.Context, well *entity.WellRecord, recs []entity.StimulationRecord, sourceDocument string) (int64, error)
	ListWells(ctx context.Context) ([]*entity.StoredWell, error)
	ListStimulations(ctx context.Context) ([]*entity.StoredStimulation, error)
	UpdateEnrichment(ctx context.Context, wellID int64, upd EnrichmentUpdate) error
}

// validateWell rejects malformed rows before they hit a store. Empty fields
// pass; only present values must have the right shape.
func validateWell(well *entity.WellRecord, sourceDocument string) error {
	v := common.NewValidator().
		Field("source_document", sourceDocument, common.Required).
		Field("state", well.State, common.StateCode).
		Field("api_number", well.APINumber, common.APINumber)
	if v.HasErrors() {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, v.Error())
	}
	return nil
}

// nullIfEmpty maps "" to NULL so partial identities never collide on the
// unique indexes.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func marshalDetails(m map[string]int) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func unmarshalDetails(s string) map[string]int {
	if s == "" {
		return nil
	}
	var m map[string]int
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}
