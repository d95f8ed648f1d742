package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/textutil"
)

var (
	reStimHeader  = regexp.MustCompile(`(?i)Well\s+Specific\s+Stimulat|Date\s+Stimulat`)
	reTreatHeader = regexp.MustCompile(`(?i)Type\s+Treatment`)
	reDateToken   = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
)

// RowStart is a matched tabular row: the fixed leading columns of one
// stimulation record on a single line.
type RowStart struct {
	Date      string
	Formation string
	Top       *int
	Bottom    *int
	Stages    *int
	Volume    *float64
	Units     string
}

// Treatment is a matched treatment-type line: a label followed by 2-4
// trailing numeric tokens whose meaning depends on their count.
type Treatment struct {
	Type    string
	Numbers []float64
}

// RowMatcher recognizes the line that opens a new record. Pluggable so a
// column-position-based strategy can replace the regex grammar without
// touching the parser.
type RowMatcher interface {
	MatchRow(line string) (RowStart, bool)
}

// DetailLineMatcher recognizes the lines that may follow a row: a
// treatment-type line or a "<proppant type>: <amount>" detail line.
type DetailLineMatcher interface {
	MatchTreatment(line string) (Treatment, bool)
	MatchDetail(line string) (label string, amount int, ok bool)
}

var (
	reStimRow = regexp.MustCompile(
		`(\d{1,2}/\d{1,2}/\d{4})\s+([A-Za-z][A-Za-z ]{1,40}?)\s+(\d{3,6})\s+(\d{3,6})\s+(\d{1,3})\s+([\d,]+(?:\.\d+)?)\s+([A-Za-z]+)`)
	reTreatLine      = regexp.MustCompile(`^([A-Za-z][A-Za-z /]{1,30}?)((?:\s+\d[\d.,]*){2,4})$`)
	reProppantDetail = regexp.MustCompile(`^\s*([A-Za-z0-9/ ]{2,40}?)\s*[:\-]\s*([\d,]+)\s*$`)
)

type regexRowMatcher struct{}

func (regexRowMatcher) MatchRow(line string) (RowStart, bool) {
	m := reStimRow.FindStringSubmatch(line)
	if m == nil {
		return RowStart{}, false
	}
	return RowStart{
		Date:      m[1],
		Formation: textutil.NormalizeSpaces(m[2]),
		Top:       textutil.ToInt(m[3]),
		Bottom:    textutil.ToInt(m[4]),
		Stages:    textutil.ToInt(m[5]),
		Volume:    textutil.ToFloat(m[6]),
		Units:     m[7],
	}, true
}

type regexDetailMatcher struct{}

func (regexDetailMatcher) MatchTreatment(line string) (Treatment, bool) {
	m := reTreatLine.FindStringSubmatch(line)
	if m == nil {
		return Treatment{}, false
	}
	var nums []float64
	for _, tok := range strings.Fields(m[2]) {
		v := textutil.ToFloat(tok)
		if v == nil {
			return Treatment{}, false
		}
		nums = append(nums, *v)
	}
	return Treatment{Type: textutil.NormalizeSpaces(m[1]), Numbers: nums}, true
}

func (regexDetailMatcher) MatchDetail(line string) (string, int, bool) {
	m := reProppantDetail.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	amount := textutil.ToInt(m[2])
	if amount == nil {
		return "", 0, false
	}
	return textutil.NormalizeSpaces(m[1]), *amount, true
}

// StimulationParser turns a block of loosely tabular lines into zero or more
// treatment records.
type StimulationParser struct {
	rows    RowMatcher
	details DetailLineMatcher
	logger  *slog.Logger
}

func NewStimulationParser(logger *slog.Logger) *StimulationParser {
	return NewStimulationParserWith(regexRowMatcher{}, regexDetailMatcher{}, logger)
}

func NewStimulationParserWith(rows RowMatcher, details DetailLineMatcher, logger *slog.Logger) *StimulationParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &StimulationParser{rows: rows, details: details, logger: logger}
}

// Parse runs a line state machine over the block: a row match opens a record
// and subsequent lines are collected into it until the next row match. A
// block with no stimulation-section signal yields nothing, which keeps
// unrelated pages from producing false positives. When the tabular pattern
// fails entirely on a block that still carries enough section signals, a
// single record is synthesized from label-anchored field matches.
func (p *StimulationParser) Parse(text string) []entity.StimulationRecord {
	if text == "" || !reStimHeader.MatchString(text) {
		return nil
	}

	lines := textutil.Lines(text)
	var records []entity.StimulationRecord
	i := 0
	for i < len(lines) {
		row, ok := p.rows.MatchRow(lines[i])
		if !ok {
			i++
			continue
		}
		rec := openRecord(row)
		i++

		var raw []string
		for i < len(lines) {
			if _, next := p.rows.MatchRow(lines[i]); next {
				break
			}
			line := lines[i]
			i++

			if rec.TreatmentType == "" {
				if t, ok := p.details.MatchTreatment(line); ok {
					applyTreatment(&rec, t)
					continue
				}
			}
			if label, amount, ok := p.details.MatchDetail(line); ok {
				if rec.ProppantDetails == nil {
					rec.ProppantDetails = make(map[string]int)
				}
				rec.ProppantDetails[label] = amount
				continue
			}
			// keep everything else for forensic traceability
			raw = append(raw, line)
		}
		rec.RawDetails = strings.Join(raw, "\n")
		records = append(records, rec)
	}

	if len(records) == 0 {
		if rec := p.parseLoose(text); rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

func openRecord(row RowStart) entity.StimulationRecord {
	return entity.StimulationRecord{
		DateStimulated: row.Date,
		Formation:      row.Formation,
		TopFt:          row.Top,
		BottomFt:       row.Bottom,
		Stages:         row.Stages,
		Volume:         row.Volume,
		VolumeUnits:    row.Units,
	}
}

// applyTreatment assigns the trailing numbers positionally by count; column
// presence on this form varies by filing era.
func applyTreatment(rec *entity.StimulationRecord, t Treatment) {
	rec.TreatmentType = t.Type
	n := t.Numbers
	switch len(n) {
	case 4:
		rec.AcidPercent = &n[0]
		rec.LbsProppant = &n[1]
		rec.MaxTreatmentPressurePSI = &n[2]
		rec.MaxTreatmentRateBblMin = &n[3]
	case 3:
		rec.LbsProppant = &n[0]
		rec.MaxTreatmentPressurePSI = &n[1]
		rec.MaxTreatmentRateBblMin = &n[2]
	case 2:
		rec.LbsProppant = &n[0]
		rec.MaxTreatmentPressurePSI = &n[1]
	}
}

// Label-anchored patterns for recognition-garbled sections where the tabular
// row never survives. Searches are unanchored, so a stray character inserted
// before a label word does not break the match.
var (
	reLooseDate      = regexp.MustCompile(`(?i)date\s+stimulated\W*(\d{1,2}/\d{1,2}/\d{4})`)
	reLooseFormation = regexp.MustCompile(`(?i)stimulated\s+formation\W*([A-Za-z][A-Za-z ]{1,40}?)(?:\n|$|\d)`)
	reLooseTop       = regexp.MustCompile(`(?i)top\s*\(?\s*ft\s*\)?\W*(\d{3,6})`)
	reLooseBottom    = regexp.MustCompile(`(?i)bottom\s*\(?\s*ft\s*\)?\W*(\d{3,6})`)
	reLooseStages    = regexp.MustCompile(`(?i)stimulation\s+stages\W*(\d{1,3})\b`)
	reLooseVolume    = regexp.MustCompile(`(?i)volume\W*([\d,]+(?:\.\d+)?)`)
	reLooseUnits     = regexp.MustCompile(`(?i)volume\s+units\W*([A-Za-z]+)`)
	reLooseTreatment = regexp.MustCompile(`(?i)type\s+treatment\W*([A-Za-z][A-Za-z /]{1,30}?)(?:\n|$|\d)`)
	reLooseAcid      = regexp.MustCompile(`(?i)acid\s*%\W*([\d.]+)`)
	reLooseProppant  = regexp.MustCompile(`(?i)lbs\s+proppant\W*([\d,]+(?:\.\d+)?)`)
	reLoosePressure  = regexp.MustCompile(`(?i)maximum\s+treatment\s+pressure\s*(?:\(\s*psi\s*\))?\W*([\d,]+(?:\.\d+)?)`)
	reLooseRate      = regexp.MustCompile(`(?i)maximum\s+treatment\s+rate\s*(?:\(\s*bbls?/min\s*\))?\W*([\d,]+(?:\.\d+)?)`)
)

var looseSignals = []*regexp.Regexp{
	reStimHeader,
	reTreatHeader,
	regexp.MustCompile(`(?i)lbs\s+proppant`),
	regexp.MustCompile(`(?i)maximum\s+treatment\s+pressure`),
	regexp.MustCompile(`(?i)maximum\s+treatment\s+rate`),
	regexp.MustCompile(`(?i)stimulation\s+stages`),
}

// parseLoose independently locates each field by its label. The synthesized
// record is accepted only with at least two distinct section signals and at
// least two strong fields populated, a minimum-evidence gate against
// spurious single-field matches on unrelated pages.
func (p *StimulationParser) parseLoose(text string) *entity.StimulationRecord {
	signals := 0
	for _, re := range looseSignals {
		if re.MatchString(text) {
			signals++
		}
	}
	if signals < 2 {
		return nil
	}

	rec := entity.StimulationRecord{}
	if m := reLooseDate.FindStringSubmatch(text); m != nil {
		rec.DateStimulated = m[1]
	}
	if m := reLooseFormation.FindStringSubmatch(text); m != nil {
		rec.Formation = textutil.NormalizeSpaces(m[1])
	}
	if m := reLooseTop.FindStringSubmatch(text); m != nil {
		rec.TopFt = textutil.ToInt(m[1])
	}
	if m := reLooseBottom.FindStringSubmatch(text); m != nil {
		rec.BottomFt = textutil.ToInt(m[1])
	}
	if m := reLooseStages.FindStringSubmatch(text); m != nil {
		rec.Stages = textutil.ToInt(m[1])
	}
	if m := reLooseUnits.FindStringSubmatch(text); m != nil {
		rec.VolumeUnits = m[1]
	}
	if m := reLooseVolume.FindStringSubmatch(text); m != nil {
		rec.Volume = textutil.ToFloat(m[1])
	}
	if m := reLooseTreatment.FindStringSubmatch(text); m != nil {
		rec.TreatmentType = textutil.NormalizeSpaces(m[1])
	}
	if m := reLooseAcid.FindStringSubmatch(text); m != nil {
		rec.AcidPercent = textutil.ToFloat(m[1])
	}
	if m := reLooseProppant.FindStringSubmatch(text); m != nil {
		rec.LbsProppant = textutil.ToFloat(m[1])
	}
	if m := reLoosePressure.FindStringSubmatch(text); m != nil {
		rec.MaxTreatmentPressurePSI = textutil.ToFloat(m[1])
	}
	if m := reLooseRate.FindStringSubmatch(text); m != nil {
		rec.MaxTreatmentRateBblMin = textutil.ToFloat(m[1])
	}

	strong := 0
	if rec.LbsProppant != nil {
		strong++
	}
	if rec.MaxTreatmentPressurePSI != nil {
		strong++
	}
	if rec.Stages != nil {
		strong++
	}
	if rec.Formation != "" {
		strong++
	}
	if rec.DateStimulated != "" {
		strong++
	}
	if strong < 2 {
		return nil
	}
	p.logger.Debug("synthesized stimulation record from loose field matches",
		"signals", signals, "strong_fields", strong)
	return &rec
}
