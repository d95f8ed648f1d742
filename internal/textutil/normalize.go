package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reSpaceRun = regexp.MustCompile(`[\s\x{00a0}]+`)
	reCRLF     = regexp.MustCompile(`\r\n?`)
)

// NormalizeSpaces collapses any run of whitespace (including non-breaking
// space) to a single space and trims both ends. Pattern matching over PDF or
// OCR text should always go through this first.
func NormalizeSpaces(s string) string {
	return strings.TrimSpace(reSpaceRun.ReplaceAllString(s, " "))
}

// Lines splits text into trimmed, non-blank lines.
func Lines(s string) []string {
	s = reCRLF.ReplaceAllString(s, "\n")
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// ToInt parses s as an integer after stripping thousands separators.
// Returns nil when s holds no usable number; it never fails loudly because a
// parse miss is the normal outcome on noisy form text.
func ToInt(s string) *int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// ToFloat is ToInt's float counterpart.
func ToFloat(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// TitleCase capitalizes the first letter of each space-separated word and
// lowercases the rest. Used for county names, which arrive in any casing.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// DMSToDecimal converts degrees/minutes/seconds plus a hemisphere letter to
// signed decimal degrees. S and W hemispheres are negative.
func DMSToDecimal(deg, minutes, seconds float64, hemi string) float64 {
	v := abs(deg) + minutes/60.0 + seconds/3600.0
	switch strings.ToUpper(hemi) {
	case "S", "W":
		v = -v
	}
	return v
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

var reUnsafeFilename = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
var reFilenameSpaces = regexp.MustCompile(`[\s_]+`)

// SanitizeFilename makes a well name safe to use as a file name.
func SanitizeFilename(name string) string {
	safe := reUnsafeFilename.ReplaceAllString(name, "_")
	safe = strings.TrimSpace(reFilenameSpaces.ReplaceAllString(safe, " "))
	if safe == "" {
		return "UNKNOWN"
	}
	if len(safe) > 150 {
		safe = safe[:150]
	}
	return safe
}
