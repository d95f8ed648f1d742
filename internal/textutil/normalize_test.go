package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSpaces(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a  b\t\tc", "a b c"},
		{"trims ends", "  hello  ", "hello"},
		{"non-breaking space", "a b", "a b"},
		{"newlines", "line1\n\nline2", "line1 line2"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSpaces(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"45,000", intPtr(45000)},
		{"12", intPtr(12)},
		{" 10450 ", intPtr(10450)},
		{"", nil},
		{"abc", nil},
		{"12.5", nil},
	}
	for _, tt := range tests {
		got := ToInt(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.in)
		} else {
			require.NotNil(t, got, "input %q", tt.in)
			assert.Equal(t, *tt.want, *got)
		}
	}
}

func TestToFloat(t *testing.T) {
	got := ToFloat("185,000")
	require.NotNil(t, got)
	assert.Equal(t, 185000.0, *got)

	assert.Nil(t, ToFloat("n/a"))
	assert.Nil(t, ToFloat(""))

	got = ToFloat("6.0")
	require.NotNil(t, got)
	assert.Equal(t, 6.0, *got)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Mckenzie", TitleCase("MCKENZIE"))
	assert.Equal(t, "Golden Valley", TitleCase("golden valley"))
	assert.Equal(t, "", TitleCase(""))
}

func TestDMSToDecimal(t *testing.T) {
	lat := DMSToDecimal(47, 30, 0, "N")
	assert.InDelta(t, 47.5, lat, 1e-9)

	lon := DMSToDecimal(103, 15, 36, "W")
	assert.InDelta(t, -103.26, lon, 1e-9)

	south := DMSToDecimal(12, 0, 0, "s")
	assert.InDelta(t, -12.0, south, 1e-9)
}

func TestLines(t *testing.T) {
	got := Lines("a\r\n\r\n  b  \nc\n")
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "JOHNSON 1-H", SanitizeFilename(`JOHNSON/1-H`))
	assert.Equal(t, "UNKNOWN", SanitizeFilename("  "))
}

func intPtr(v int) *int { return &v }
