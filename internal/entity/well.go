package entity

import "github.com/rafayelmirijanyan1997/Oil-Wells-Project/constants"

// WellRecord accumulates identity and location fields for one document.
// Fields follow first-writer-wins across pages: repeated boilerplate pages
// must not overwrite a value captured earlier in the document.
type WellRecord struct {
	FileNumber string   `json:"well_file_number,omitempty"`
	APINumber  string   `json:"api_number,omitempty"`
	WellName   string   `json:"well_name,omitempty"`
	Operator   string   `json:"operator,omitempty"`
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	County     string   `json:"county,omitempty"`
	Zip        string   `json:"zip,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// Field names accepted by SetField. Kept as plain strings so extraction label
// tables can address fields without reflection.
const (
	FieldFileNumber = "well_file_number"
	FieldAPINumber  = "api_number"
	FieldWellName   = "well_name"
	FieldOperator   = "operator"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldState      = "state"
	FieldCounty     = "county"
	FieldZip        = "zip"
)

// SetField sets a named field only when it is still empty, and reports
// whether the write took effect.
func (w *WellRecord) SetField(name, value string) bool {
	if value == "" {
		return false
	}
	slot := w.slot(name)
	if slot == nil || *slot != "" {
		return false
	}
	*slot = value
	return true
}

func (w *WellRecord) slot(name string) *string {
	switch name {
	case FieldFileNumber:
		return &w.FileNumber
	case FieldAPINumber:
		return &w.APINumber
	case FieldWellName:
		return &w.WellName
	case FieldOperator:
		return &w.Operator
	case FieldAddress:
		return &w.Address
	case FieldCity:
		return &w.City
	case FieldState:
		return &w.State
	case FieldCounty:
		return &w.County
	case FieldZip:
		return &w.Zip
	}
	return nil
}

// HasIdentity reports whether the well can be keyed externally.
func (w *WellRecord) HasIdentity() bool {
	return w.FileNumber != "" || w.APINumber != ""
}

// HasLocation reports whether at least one location signal is present.
func (w *WellRecord) HasLocation() bool {
	return w.Address != "" || w.City != "" || w.State != "" ||
		w.County != "" || w.Zip != "" || w.Latitude != nil || w.Longitude != nil
}

// StimulationRecord describes one treatment event parsed from the tabular
// stimulation section. A record is never mutated after the parser closes it.
type StimulationRecord struct {
	DateStimulated          string         `json:"date_stimulated,omitempty"`
	Formation               string         `json:"stimulated_formation,omitempty"`
	TopFt                   *int           `json:"top_ft,omitempty"`
	BottomFt                *int           `json:"bottom_ft,omitempty"`
	Stages                  *int           `json:"stimulation_stages,omitempty"`
	Volume                  *float64       `json:"volume,omitempty"`
	VolumeUnits             string         `json:"volume_units,omitempty"`
	TreatmentType           string         `json:"treatment_type,omitempty"`
	AcidPercent             *float64       `json:"acid_percent,omitempty"`
	LbsProppant             *float64       `json:"lbs_proppant,omitempty"`
	MaxTreatmentPressurePSI *float64       `json:"max_treatment_pressure_psi,omitempty"`
	MaxTreatmentRateBblMin  *float64       `json:"max_treatment_rate_bbls_min,omitempty"`
	ProppantDetails         map[string]int `json:"proppant_details,omitempty"`
	RawDetails              string         `json:"raw_details,omitempty"`
}

// PageText is one page's best available text plus its provenance.
type PageText struct {
	Index  int // 0-based
	Text   string
	Method constants.ExtractionMethod
}

// PageSnapshot records per-page provenance for the serialized snapshot.
type PageSnapshot struct {
	PageNumber int    `json:"page_number"` // 1-based
	Method     string `json:"method"`
	CharCount  int    `json:"text_char_count"`
	Text       string `json:"text"`
}

// DocumentExtract is the full result of one document's extraction run and the
// unit handed to persistence. Every page's outcome is reproducible from it.
type DocumentExtract struct {
	SourceDocument string              `json:"pdf_filename"`
	Well           WellRecord          `json:"well"`
	Stimulations   []StimulationRecord `json:"stimulation_records"`
	Pages          []PageSnapshot      `json:"pages"`
	Complete       bool                `json:"complete"`
}

// Complete is the termination condition for a document: identity, a name, at
// least one location signal, and at least one stimulation record.
func Complete(w *WellRecord, recs []StimulationRecord) bool {
	return w.HasIdentity() && w.WellName != "" && w.HasLocation() && len(recs) > 0
}
