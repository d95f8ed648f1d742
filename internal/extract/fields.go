package extract

import (
	"regexp"
	"strings"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/textutil"
)

// labelSpec binds a well field to its label variants in priority order. The
// regulatory form family restates the same field under slightly different
// captions depending on filing era.
type labelSpec struct {
	field  string
	labels []string
}

var wellLabels = []labelSpec{
	{entity.FieldWellName, []string{"well name and number", "well name", "official well name"}},
	{entity.FieldFileNumber, []string{"well file no.", "well file number", "file no."}},
	{entity.FieldAPINumber, []string{"api number", "api no.", "api #"}},
	{entity.FieldOperator, []string{"operator", "name of operator"}},
	{entity.FieldAddress, []string{"address", "address of operator"}},
	{entity.FieldCity, []string{"city"}},
	{entity.FieldState, []string{"state"}},
	{entity.FieldCounty, []string{"county", "county of well location"}},
	{entity.FieldZip, []string{"zip code", "zip"}},
}

// knownLabels guards against two adjacent label lines with no value between
// them, a common artifact on blank form fields.
var knownLabels = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, spec := range wellLabels {
		for _, l := range spec.labels {
			m[l] = struct{}{}
		}
	}
	return m
}()

var (
	reDigitRun  = regexp.MustCompile(`(?:^|\D)(\d{3,6})(?:\D|$)`)
	reAPIDashed = regexp.MustCompile(`\b(\d{2}-\d{3}-\d{5,})\b`)
	reZip       = regexp.MustCompile(`\b(\d{5}(?:-\d{4})?)\b`)
	reTwoLetter = regexp.MustCompile(`^[A-Za-z]{2}$`)
	reAlphaWord = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*$`)
	reNameAPI   = regexp.MustCompile(`(?i)\s+API\s*[:#].*$`)
)

// stateNames resolves spelled-out state names seen on this form family to
// their 2-letter codes.
var stateNames = map[string]string{
	"north dakota": "ND",
	"south dakota": "SD",
	"montana":      "MT",
	"wyoming":      "WY",
	"colorado":     "CO",
	"texas":        "TX",
	"new mexico":   "NM",
	"oklahoma":     "OK",
	"kansas":       "KS",
	"utah":         "UT",
	"nebraska":     "NE",
	"minnesota":    "MN",
}

// ExtractFields locates labeled key/value fields in a page's text. A label
// matches only when a whole line equals the label after normalization; the
// value is the first of the next few non-blank lines that is not itself a
// label. Only resolvable fields appear in the result.
func ExtractFields(text string, window int) map[string]string {
	if window <= 0 {
		window = 3
	}
	raw := textutil.Lines(text)
	norm := make([]string, len(raw))
	for i, ln := range raw {
		norm[i] = strings.ToLower(textutil.NormalizeSpaces(ln))
	}

	out := make(map[string]string)
	for _, spec := range wellLabels {
		if v := findLabeledValue(spec, raw, norm, window); v != "" {
			out[spec.field] = v
		}
	}
	return out
}

func findLabeledValue(spec labelSpec, raw, norm []string, window int) string {
	for _, label := range spec.labels {
		for i, n := range norm {
			if n != label {
				continue
			}
			for j := i + 1; j <= i+window && j < len(raw); j++ {
				if _, isLabel := knownLabels[norm[j]]; isLabel {
					continue
				}
				if v := postProcess(spec.field, raw[j]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func postProcess(field, candidate string) string {
	v := textutil.NormalizeSpaces(candidate)
	if v == "" {
		return ""
	}
	switch field {
	case entity.FieldState:
		return resolveState(v)
	case entity.FieldCounty:
		if !reAlphaWord.MatchString(v) {
			return ""
		}
		return textutil.TitleCase(v)
	case entity.FieldFileNumber:
		// recognition sometimes leaves label fragments attached; the 3-6
		// digit run is the canonical value
		if m := reDigitRun.FindStringSubmatch(v); m != nil {
			return m[1]
		}
		return ""
	case entity.FieldAPINumber:
		if m := reAPIDashed.FindString(v); m != "" {
			return m
		}
		return ""
	case entity.FieldZip:
		if m := reZip.FindString(v); m != "" {
			return m
		}
		return ""
	case entity.FieldWellName:
		return textutil.NormalizeSpaces(reNameAPI.ReplaceAllString(v, ""))
	}
	return v
}

func resolveState(v string) string {
	if reTwoLetter.MatchString(v) {
		return strings.ToUpper(v)
	}
	if code, ok := stateNames[strings.ToLower(v)]; ok {
		return code
	}
	return ""
}

// FindAPINumber scans arbitrary text for a dashed API well identifier,
// independent of labels. Forms print it inline as often as in a field box.
func FindAPINumber(text string) string {
	return reAPIDashed.FindString(text)
}

// FindStateMention resolves a spelled-out state name anywhere in the text.
// North Dakota takes precedence since these filings name it as the filing
// jurisdiction even when an operator address mentions another state; among
// the rest the earliest mention wins.
func FindStateMention(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "north dakota") {
		return "ND"
	}
	best, code := -1, ""
	for name, c := range stateNames {
		if idx := strings.Index(lower, name); idx >= 0 && (best < 0 || idx < best) {
			best, code = idx, c
		}
	}
	return code
}

var (
	reDMSLat = regexp.MustCompile(`(\d{1,2})\s*°\s*(\d{1,2})\s*'\s*([\d.]+)\s*"?\s*([NSns])`)
	reDMSLon = regexp.MustCompile(`(\d{1,3})\s*°\s*(\d{1,2})\s*'\s*([\d.]+)\s*"?\s*([EWew])`)
)

// ExtractLatLon finds degrees-minutes-seconds coordinates document-wide.
// The last match is authoritative: these forms restate a preliminary value
// early and a corrected one later in the completion section.
func ExtractLatLon(text string) (lat, lon *float64) {
	return dmsValue(lastSubmatch(reDMSLat, text)), dmsValue(lastSubmatch(reDMSLon, text))
}

func dmsValue(m []string) *float64 {
	if m == nil {
		return nil
	}
	deg, min, sec := textutil.ToFloat(m[1]), textutil.ToFloat(m[2]), textutil.ToFloat(m[3])
	if deg == nil || min == nil || sec == nil {
		return nil
	}
	v := textutil.DMSToDecimal(*deg, *min, *sec, m[4])
	limit := 180.0
	if strings.EqualFold(m[4], "N") || strings.EqualFold(m[4], "S") {
		limit = 90.0
	}
	// Garbled scans can produce impossible degree values; treat those the
	// same as no coordinate at all.
	if v < -limit || v > limit {
		return nil
	}
	return &v
}

func lastSubmatch(re *regexp.Regexp, text string) []string {
	all := re.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}
