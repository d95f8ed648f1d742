package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStimulationParser_NoSignalNoRecords(t *testing.T) {
	p := NewStimulationParser(nil)

	texts := []string{
		"",
		"This page discusses drilling mud composition.\n03/14/2019 Bakken 10450 10620 12 45,000 bbls",
		"CASING RECORD\nSurface 9 5/8 2200",
	}
	for _, text := range texts {
		assert.Empty(t, p.Parse(text), "text %q", text)
	}
}

func TestStimulationParser_FullRow(t *testing.T) {
	p := NewStimulationParser(nil)

	text := `Well Specific Stimulations
Date Stimulated Stimulated Formation Top (Ft) Bottom (Ft) Stimulation Stages Volume Volume Units
03/14/2019 Bakken 10450 10620 12 45,000 bbls
Slickwater 6.0 185000 9200 62.0`

	recs := p.Parse(text)
	require.Len(t, recs, 1)
	rec := recs[0]

	assert.Equal(t, "03/14/2019", rec.DateStimulated)
	assert.Equal(t, "Bakken", rec.Formation)
	require.NotNil(t, rec.TopFt)
	assert.Equal(t, 10450, *rec.TopFt)
	require.NotNil(t, rec.BottomFt)
	assert.Equal(t, 10620, *rec.BottomFt)
	require.NotNil(t, rec.Stages)
	assert.Equal(t, 12, *rec.Stages)
	require.NotNil(t, rec.Volume)
	assert.Equal(t, 45000.0, *rec.Volume)
	assert.Equal(t, "bbls", rec.VolumeUnits)

	assert.Equal(t, "Slickwater", rec.TreatmentType)
	require.NotNil(t, rec.AcidPercent)
	assert.Equal(t, 6.0, *rec.AcidPercent)
	require.NotNil(t, rec.LbsProppant)
	assert.Equal(t, 185000.0, *rec.LbsProppant)
	require.NotNil(t, rec.MaxTreatmentPressurePSI)
	assert.Equal(t, 9200.0, *rec.MaxTreatmentPressurePSI)
	require.NotNil(t, rec.MaxTreatmentRateBblMin)
	assert.Equal(t, 62.0, *rec.MaxTreatmentRateBblMin)
}

func TestStimulationParser_PositionalNumberMapping(t *testing.T) {
	p := NewStimulationParser(nil)

	makeText := func(treatLine string) string {
		return "Date Stimulated\n03/14/2019 Bakken 10450 10620 12 45,000 bbls\n" + treatLine
	}

	t.Run("three numbers", func(t *testing.T) {
		recs := p.Parse(makeText("Crosslink 185,000 9200 62.0"))
		require.Len(t, recs, 1)
		rec := recs[0]
		assert.Nil(t, rec.AcidPercent)
		require.NotNil(t, rec.LbsProppant)
		assert.Equal(t, 185000.0, *rec.LbsProppant)
		require.NotNil(t, rec.MaxTreatmentPressurePSI)
		assert.Equal(t, 9200.0, *rec.MaxTreatmentPressurePSI)
		require.NotNil(t, rec.MaxTreatmentRateBblMin)
		assert.Equal(t, 62.0, *rec.MaxTreatmentRateBblMin)
	})

	t.Run("two numbers", func(t *testing.T) {
		recs := p.Parse(makeText("Gel 185,000 9200"))
		require.Len(t, recs, 1)
		rec := recs[0]
		assert.Nil(t, rec.AcidPercent)
		assert.Nil(t, rec.MaxTreatmentRateBblMin)
		require.NotNil(t, rec.LbsProppant)
		assert.Equal(t, 185000.0, *rec.LbsProppant)
		require.NotNil(t, rec.MaxTreatmentPressurePSI)
		assert.Equal(t, 9200.0, *rec.MaxTreatmentPressurePSI)
	})
}

func TestStimulationParser_DetailsAndRawText(t *testing.T) {
	p := NewStimulationParser(nil)

	text := `Well Specific Stimulations
03/14/2019 Bakken 10450 10620 12 45,000 bbls
Slickwater 6.0 185000 9200 62.0
100 Mesh: 45,000
40/70 Sand: 140,000
pumped per design with no screenout`

	recs := p.Parse(text)
	require.Len(t, recs, 1)
	rec := recs[0]

	require.NotNil(t, rec.ProppantDetails)
	assert.Equal(t, 45000, rec.ProppantDetails["100 Mesh"])
	assert.Equal(t, 140000, rec.ProppantDetails["40/70 Sand"])
	assert.Equal(t, "pumped per design with no screenout", rec.RawDetails)

	// detail lines must not disturb the positional treatment fields
	require.NotNil(t, rec.LbsProppant)
	assert.Equal(t, 185000.0, *rec.LbsProppant)
}

func TestStimulationParser_MultipleRecords(t *testing.T) {
	p := NewStimulationParser(nil)

	text := `Well Specific Stimulations
03/14/2019 Bakken 10450 10620 12 45,000 bbls
Slickwater 6.0 185000 9200 62.0
06/02/2020 Three Forks 10800 11050 8 30,000 bbls
Gel 120,000 8600`

	recs := p.Parse(text)
	require.Len(t, recs, 2)
	assert.Equal(t, "Bakken", recs[0].Formation)
	assert.Equal(t, "Three Forks", recs[1].Formation)
	require.NotNil(t, recs[1].Stages)
	assert.Equal(t, 8, *recs[1].Stages)
	assert.Equal(t, "Gel", recs[1].TreatmentType)
}

func TestStimulationParser_OneTreatmentLinePerRecord(t *testing.T) {
	p := NewStimulationParser(nil)

	text := `Date Stimulated
03/14/2019 Bakken 10450 10620 12 45,000 bbls
Slickwater 6.0 185000 9200 62.0
Crosslink 1.0 99999 1111 2.0`

	recs := p.Parse(text)
	require.Len(t, recs, 1)
	assert.Equal(t, "Slickwater", recs[0].TreatmentType)
	require.NotNil(t, recs[0].LbsProppant)
	assert.Equal(t, 185000.0, *recs[0].LbsProppant)
	// the second treatment-shaped line is retained as raw detail text
	assert.Contains(t, recs[0].RawDetails, "Crosslink")
}

func TestStimulationParser_LooseModeSynthesizesRecord(t *testing.T) {
	p := NewStimulationParser(nil)

	// garbled section: no tabular row survives, but labels do
	text := `Well Specific Stimulations
rDate Stimulated 03/14/2019
Stimulated Formation Bakken
Stimulation Stages 12
Lbs Proppant 185,000
Maximum Treatment Pressure (PSI) 9200
Maximum Treatment Rate (BBLS/Min) 62.0`

	recs := p.Parse(text)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "03/14/2019", rec.DateStimulated)
	assert.Equal(t, "Bakken", rec.Formation)
	require.NotNil(t, rec.Stages)
	assert.Equal(t, 12, *rec.Stages)
	require.NotNil(t, rec.LbsProppant)
	assert.Equal(t, 185000.0, *rec.LbsProppant)
	require.NotNil(t, rec.MaxTreatmentPressurePSI)
	assert.Equal(t, 9200.0, *rec.MaxTreatmentPressurePSI)
	require.NotNil(t, rec.MaxTreatmentRateBblMin)
	assert.Equal(t, 62.0, *rec.MaxTreatmentRateBblMin)
}

func TestStimulationParser_LooseModeEvidenceGate(t *testing.T) {
	p := NewStimulationParser(nil)

	// one signal and one strong field: not enough evidence
	assert.Empty(t, p.Parse("Date Stimulated 03/14/2019"))

	// two signals but only one strong field
	assert.Empty(t, p.Parse("Well Specific Stimulations\nType Treatment\nDate Stimulated 03/14/2019"))
}
