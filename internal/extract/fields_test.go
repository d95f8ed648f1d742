package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

func TestExtractFields_LabelThenValue(t *testing.T) {
	text := "Well Name and Number\nJOHNSON 1-H\nOperator\nPIONEER RESOURCES\n"
	got := ExtractFields(text, 3)
	assert.Equal(t, "JOHNSON 1-H", got[entity.FieldWellName])
	assert.Equal(t, "PIONEER RESOURCES", got[entity.FieldOperator])
}

func TestExtractFields_ValueWithinWindow(t *testing.T) {
	// the value sits two non-blank lines below the label
	text := "State\nCounty\nnd\n"
	got := ExtractFields(text, 3)
	assert.Equal(t, "ND", got[entity.FieldState])
}

func TestExtractFields_AdjacentLabelsSkipped(t *testing.T) {
	// a blank form field leaves two label lines back to back; the next
	// label line must never be taken as a value
	got := ExtractFields("Operator\nAddress\n", 3)
	_, hasOperator := got[entity.FieldOperator]
	assert.False(t, hasOperator, "label line must not become a value")
}

func TestExtractFields_PostProcessing(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
		want  string
	}{
		{"county title-cased", "County\nMCKENZIE\n", entity.FieldCounty, "Mckenzie"},
		{"state uppercased", "State\nnd\n", entity.FieldState, "ND"},
		{"state full name", "State\nNorth Dakota\n", entity.FieldState, "ND"},
		{"file number digit run", "Well File No.\nFile 12345\n", entity.FieldFileNumber, "12345"},
		{"zip extracted", "Zip Code\n58801-1234\n", entity.FieldZip, "58801-1234"},
		{"api dashed", "API Number\n33-053-06057\n", entity.FieldAPINumber, "33-053-06057"},
		{"name api suffix stripped", "Well Name and Number\nJOHNSON 1-H  API: 33-053-06057\n", entity.FieldWellName, "JOHNSON 1-H"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFields(tt.text, 3)
			assert.Equal(t, tt.want, got[tt.field])
		})
	}
}

func TestExtractFields_RejectsGarbage(t *testing.T) {
	// no digit run of the right width -> file number unresolved
	got := ExtractFields("Well File No.\nnone recorded\n", 3)
	_, ok := got[entity.FieldFileNumber]
	assert.False(t, ok)

	// county with digits is noise
	got = ExtractFields("County\nMcK3nz1e 44\n", 3)
	_, ok = got[entity.FieldCounty]
	assert.False(t, ok)
}

func TestFindAPINumber(t *testing.T) {
	assert.Equal(t, "33-053-06057", FindAPINumber("some text 33-053-06057 more"))
	assert.Equal(t, "", FindAPINumber("no api here"))
}

func TestExtractLatLon_LastMatchWins(t *testing.T) {
	text := `preliminary location 47° 30' 0" N 103° 15' 36" W
some pages later
corrected location 47° 45' 30" N 103° 20' 0" W`

	lat, lon := ExtractLatLon(text)
	require.NotNil(t, lat)
	require.NotNil(t, lon)
	assert.InDelta(t, 47.0+45.0/60+30.0/3600, *lat, 1e-9)
	assert.InDelta(t, -(103.0+20.0/60), *lon, 1e-9)
}

func TestFindStateMention(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"single mention", "well located in McKenzie County, North Dakota", "ND"},
		{"jurisdiction beats operator address", "operator offices in Denver, Colorado and Houston, Texas; well located in North Dakota", "ND"},
		{"earliest mention wins otherwise", "shipped from Casper, Wyoming to a yard in Montana", "WY"},
		{"no mention", "no state named anywhere", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// repeat so an unstable result would surface
			for i := 0; i < 50; i++ {
				assert.Equal(t, tc.want, FindStateMention(tc.text))
			}
		})
	}
}

func TestExtractLatLon_ImpossibleDegreesDropped(t *testing.T) {
	// a garbled scan can misread the degree digits; the coordinate must
	// degrade to absence rather than poison the document
	lat, lon := ExtractLatLon(`surface location 95° 30' 0" N 250° 15' 36" W`)
	assert.Nil(t, lat)
	assert.Nil(t, lon)
}

func TestExtractLatLon_Absent(t *testing.T) {
	lat, lon := ExtractLatLon("no coordinates on this page")
	assert.Nil(t, lat)
	assert.Nil(t, lon)
}
