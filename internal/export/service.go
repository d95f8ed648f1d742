package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/repository"
)

// Service is a tiny façade over the well repository that produces XLSX bytes
// for exports.
type Service struct {
	repo   repository.WellRepository
	logger *slog.Logger
}

func NewService(repo repository.WellRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportWellsXLSX returns an XLSX workbook (as bytes) with one sheet of wells
// and one of stimulation records.
func (s *Service) ExportWellsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	wells, err := s.repo.ListWells(ctx)
	if err != nil {
		return nil, fmt.Errorf("query wells: %w", err)
	}
	recs, err := s.repo.ListStimulations(ctx)
	if err != nil {
		return nil, fmt.Errorf("query stimulations: %w", err)
	}

	f := excelize.NewFile()

	const wellsSheet = "Wells"
	if err := renameDefaultSheet(f, wellsSheet); err != nil {
		return nil, err
	}
	writeHeaders(f, wellsSheet, []string{
		"ID", "File Number", "API Number", "Well Name", "Operator",
		"Address", "City", "State", "County", "Zip",
		"Latitude", "Longitude", "Source Document",
		"Well Status", "Well Type", "Closest City",
		"Latest Oil (bbl)", "Latest Gas (MCF)", "Production Month", "DrillingEdge URL",
	})
	for i, w := range wells {
		row := i + 2
		write := cellWriter(f, wellsSheet, row)
		write(1, w.ID)
		write(2, w.FileNumber)
		write(3, w.APINumber)
		write(4, w.WellName)
		write(5, w.Operator)
		write(6, w.Address)
		write(7, w.City)
		write(8, w.State)
		write(9, w.County)
		write(10, w.Zip)
		writeFloat(write, 11, w.Latitude)
		writeFloat(write, 12, w.Longitude)
		write(13, w.SourceDocument)
		write(14, w.WellStatus)
		write(15, w.WellType)
		write(16, w.ClosestCity)
		writeFloat(write, 17, w.LatestOilBBL)
		writeFloat(write, 18, w.LatestGasMCF)
		write(19, w.LatestProdLabel)
		write(20, w.DrillingEdgeURL)
	}
	_ = f.SetColWidth(wellsSheet, "D", "E", 28)
	_ = f.SetColWidth(wellsSheet, "T", "T", 60)

	const stimSheet = "Stimulations"
	if _, err := f.NewSheet(stimSheet); err != nil {
		return nil, err
	}
	writeHeaders(f, stimSheet, []string{
		"ID", "Well ID", "Date Stimulated", "Formation",
		"Top (ft)", "Bottom (ft)", "Stages",
		"Volume", "Volume Units", "Treatment Type",
		"Acid %", "Lbs Proppant", "Max Pressure (PSI)", "Max Rate (bbl/min)",
		"Proppant Details", "Raw Details", "Source Document",
	})
	for i, r := range recs {
		row := i + 2
		write := cellWriter(f, stimSheet, row)
		write(1, r.ID)
		write(2, r.WellID)
		write(3, r.DateStimulated)
		write(4, r.Formation)
		writeInt(write, 5, r.TopFt)
		writeInt(write, 6, r.BottomFt)
		writeInt(write, 7, r.Stages)
		writeFloat(write, 8, r.Volume)
		write(9, r.VolumeUnits)
		write(10, r.TreatmentType)
		writeFloat(write, 11, r.AcidPercent)
		writeFloat(write, 12, r.LbsProppant)
		writeFloat(write, 13, r.MaxTreatmentPressurePSI)
		writeFloat(write, 14, r.MaxTreatmentRateBblMin)
		write(15, formatDetails(r.ProppantDetails))
		write(16, truncate(r.RawDetails, 140))
		write(17, r.SourceDocument)
	}
	_ = f.SetColWidth(stimSheet, "O", "P", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"wells", len(wells),
		"stimulations", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func renameDefaultSheet(f *excelize.File, name string) error {
	return f.SetSheetName(f.GetSheetName(0), name)
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func cellWriter(f *excelize.File, sheet string, row int) func(col int, v any) {
	return func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func writeFloat(write func(int, any), col int, v *float64) {
	if v == nil {
		write(col, "")
		return
	}
	write(col, *v)
}

func writeInt(write func(int, any), col int, v *int) {
	if v == nil {
		write(col, "")
		return
	}
	write(col, *v)
}

// formatDetails renders proppant breakdowns as "label: amount" pairs.
func formatDetails(m map[string]int) string {
	if len(m) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, fmt.Sprintf("%s: %d", k, v))
	}
	// deterministic cell content
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
