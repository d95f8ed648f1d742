package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

func sampleExtract() *entity.DocumentExtract {
	lat := 47.5
	return &entity.DocumentExtract{
		SourceDocument: "W12345.pdf",
		Well: entity.WellRecord{
			FileNumber: "12345",
			WellName:   "JOHNSON 1-H",
			State:      "ND",
			County:     "Mckenzie",
			Latitude:   &lat,
		},
		Stimulations: []entity.StimulationRecord{
			{DateStimulated: "03/14/2019", Formation: "Bakken"},
		},
		Pages: []entity.PageSnapshot{
			{PageNumber: 1, Method: "layer", CharCount: 5, Text: "hello"},
			{PageNumber: 2, Method: "ocr", CharCount: 0, Text: ""},
		},
		Complete: true,
	}
}

func TestMarshalSnapshot_RoundTrip(t *testing.T) {
	data, err := MarshalSnapshot(sampleExtract())
	require.NoError(t, err)

	var got entity.DocumentExtract
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "W12345.pdf", got.SourceDocument)
	assert.Equal(t, "ND", got.Well.State)
	assert.Len(t, got.Pages, 2)
	assert.True(t, got.Complete)
}

func TestMarshalSnapshot_RejectsInvalidState(t *testing.T) {
	ex := sampleExtract()
	ex.Well.State = "North Dakota" // schema wants the two-letter code

	_, err := MarshalSnapshot(ex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot schema")
}

func TestMarshalSnapshot_RejectsBadMethod(t *testing.T) {
	ex := sampleExtract()
	ex.Pages[0].Method = "guess"

	_, err := MarshalSnapshot(ex)
	require.Error(t, err)
}

func TestWriteSnapshot_NamedAfterWell(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSnapshot(dir, sampleExtract())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "JOHNSON 1-H.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"well_file_number": "12345"`)
}

func TestWriteSnapshot_FallsBackToDocumentStem(t *testing.T) {
	dir := t.TempDir()
	ex := sampleExtract()
	ex.Well.WellName = ""

	path, err := WriteSnapshot(dir, ex)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "W12345.json"), path)
}
