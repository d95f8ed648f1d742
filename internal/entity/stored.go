package entity

import "time"

// StoredWell is a persisted well row, including enrichment columns filled in
// by the production-figures lookup.
type StoredWell struct {
	ID int64 `json:"id"`
	WellRecord
	SourceDocument string    `json:"source_document"`
	CreatedAt      time.Time `json:"created_at"`

	DrillingEdgeURL string   `json:"drillingedge_url,omitempty"`
	WellStatus      string   `json:"well_status,omitempty"`
	WellType        string   `json:"well_type,omitempty"`
	ClosestCity     string   `json:"closest_city,omitempty"`
	LatestOilBBL    *float64 `json:"latest_oil_bbl,omitempty"`
	LatestGasMCF    *float64 `json:"latest_gas_mcf,omitempty"`
	LatestProdLabel string   `json:"latest_prod_label,omitempty"`
}

// StoredStimulation is a persisted stimulation row tied to a well id.
type StoredStimulation struct {
	ID     int64 `json:"id"`
	WellID int64 `json:"well_id"`
	StimulationRecord
	SourceDocument string    `json:"source_document"`
	CreatedAt      time.Time `json:"created_at"`
}
