package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepo(t *testing.T) WellRepository {
	t.Helper()
	db, err := OpenSQLite(":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewSQLiteWellRepository(db, testLogger())
	require.NoError(t, err)
	return repo
}

func sampleWell() *entity.WellRecord {
	lat := 47.5
	return &entity.WellRecord{
		FileNumber: "12345",
		APINumber:  "33-053-04567",
		WellName:   "JOHNSON 1-H",
		Operator:   "ACME OPERATING LLC",
		State:      "ND",
		County:     "Mckenzie",
		Latitude:   &lat,
	}
}

func sampleRecord() entity.StimulationRecord {
	top, bottom, stages := 10450, 10620, 12
	vol, prop := 45000.0, 185000.0
	return entity.StimulationRecord{
		DateStimulated:  "03/14/2019",
		Formation:       "Bakken",
		TopFt:           &top,
		BottomFt:        &bottom,
		Stages:          &stages,
		Volume:          &vol,
		VolumeUnits:     "bbls",
		TreatmentType:   "Slickwater",
		LbsProppant:     &prop,
		ProppantDetails: map[string]int{"100 Mesh": 45000},
	}
}

func TestSaveExtraction_InsertAndReadBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.SaveExtraction(ctx, sampleWell(), []entity.StimulationRecord{sampleRecord()}, "W12345.pdf")
	require.NoError(t, err)
	assert.Positive(t, id)

	wells, err := repo.ListWells(ctx)
	require.NoError(t, err)
	require.Len(t, wells, 1)
	assert.Equal(t, "12345", wells[0].FileNumber)
	assert.Equal(t, "JOHNSON 1-H", wells[0].WellName)
	require.NotNil(t, wells[0].Latitude)
	assert.InDelta(t, 47.5, *wells[0].Latitude, 1e-9)
	assert.False(t, wells[0].CreatedAt.IsZero())

	recs, err := repo.ListStimulations(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].WellID)
	assert.Equal(t, "Bakken", recs[0].Formation)
	require.NotNil(t, recs[0].TopFt)
	assert.Equal(t, 10450, *recs[0].TopFt)
	assert.Equal(t, map[string]int{"100 Mesh": 45000}, recs[0].ProppantDetails)
	assert.Nil(t, recs[0].AcidPercent)
}

func TestSaveExtraction_ReprocessReusesWellAndAppendsRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.SaveExtraction(ctx, sampleWell(), []entity.StimulationRecord{sampleRecord()}, "W12345.pdf")
	require.NoError(t, err)
	second, err := repo.SaveExtraction(ctx, sampleWell(), []entity.StimulationRecord{sampleRecord()}, "W12345.pdf")
	require.NoError(t, err)
	assert.Equal(t, first, second, "same file number resolves to the same well row")

	wells, err := repo.ListWells(ctx)
	require.NoError(t, err)
	assert.Len(t, wells, 1)

	recs, err := repo.ListStimulations(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2, "stimulation rows append on reprocess")
}

func TestSaveExtraction_MatchesByAPIWhenFileNumberMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.SaveExtraction(ctx, sampleWell(), nil, "a.pdf")
	require.NoError(t, err)

	w := sampleWell()
	w.FileNumber = ""
	second, err := repo.SaveExtraction(ctx, w, nil, "b.pdf")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSaveExtraction_PartialIdentitiesDoNotCollide(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := &entity.WellRecord{FileNumber: "11111", WellName: "A 1"}
	b := &entity.WellRecord{FileNumber: "22222", WellName: "B 1"}

	_, err := repo.SaveExtraction(ctx, a, nil, "a.pdf")
	require.NoError(t, err)
	_, err = repo.SaveExtraction(ctx, b, nil, "b.pdf")
	require.NoError(t, err, "wells without API numbers must not conflict on the unique index")

	wells, err := repo.ListWells(ctx)
	require.NoError(t, err)
	assert.Len(t, wells, 2)
}

func TestUpdateEnrichment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.SaveExtraction(ctx, sampleWell(), nil, "a.pdf")
	require.NoError(t, err)

	oil, gas := 12500.0, 43000.0
	err = repo.UpdateEnrichment(ctx, id, EnrichmentUpdate{
		DrillingEdgeURL: "https://www.drillingedge.com/x",
		WellStatus:      "Active",
		WellType:        "Oil & Gas",
		ClosestCity:     "Watford City",
		LatestOilBBL:    &oil,
		LatestGasMCF:    &gas,
		LatestProdLabel: "June 2025",
	})
	require.NoError(t, err)

	wells, err := repo.ListWells(ctx)
	require.NoError(t, err)
	require.Len(t, wells, 1)
	assert.Equal(t, "Active", wells[0].WellStatus)
	require.NotNil(t, wells[0].LatestOilBBL)
	assert.InDelta(t, 12500.0, *wells[0].LatestOilBBL, 1e-9)
}

func TestSaveExtraction_RejectsMalformedState(t *testing.T) {
	repo := newTestRepo(t)

	w := sampleWell()
	w.State = "North Dakota"
	_, err := repo.SaveExtraction(context.Background(), w, nil, "a.pdf")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdateEnrichment_UnknownWell(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateEnrichment(context.Background(), 999, EnrichmentUpdate{WellStatus: "Active"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
