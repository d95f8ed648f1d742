package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS wells (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	well_file_number TEXT UNIQUE,
	api_number TEXT UNIQUE,
	well_name TEXT NOT NULL DEFAULT '',
	operator TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	county TEXT NOT NULL DEFAULT '',
	zip TEXT NOT NULL DEFAULT '',
	latitude REAL,
	longitude REAL,
	source_document TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	drillingedge_url TEXT NOT NULL DEFAULT '',
	well_status TEXT NOT NULL DEFAULT '',
	well_type TEXT NOT NULL DEFAULT '',
	closest_city TEXT NOT NULL DEFAULT '',
	latest_oil_bbl REAL,
	latest_gas_mcf REAL,
	latest_prod_label TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS stimulations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	well_id INTEGER NOT NULL REFERENCES wells(id),
	date_stimulated TEXT NOT NULL DEFAULT '',
	formation TEXT NOT NULL DEFAULT '',
	top_ft INTEGER,
	bottom_ft INTEGER,
	stages INTEGER,
	volume REAL,
	volume_units TEXT NOT NULL DEFAULT '',
	treatment_type TEXT NOT NULL DEFAULT '',
	acid_percent REAL,
	lbs_proppant REAL,
	max_pressure_psi REAL,
	max_rate_bbl_min REAL,
	proppant_details TEXT NOT NULL DEFAULT '',
	raw_details TEXT NOT NULL DEFAULT '',
	source_document TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stimulations_well_id ON stimulations(well_id);
`

type sqliteWellRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteWellRepository bootstraps the schema and returns a repository over
// the given SQLite handle.
func NewSQLiteWellRepository(db *sql.DB, logger *slog.Logger) (WellRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, common.WrapError(err, "ensure sqlite schema")
	}
	return &sqliteWellRepository{db: db, logger: logger}, nil
}

func (r *sqliteWellRepository) SaveExtraction(ctx context.Context, well *entity.WellRecord, recs []entity.StimulationRecord, sourceDocument string) (int64, error) {
	if err := validateWell(well, sourceDocument); err != nil {
		return 0, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, common.WrapError(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	wellID, err := r.findOrInsertWell(ctx, tx, well, sourceDocument)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range recs {
		details, err := marshalDetails(rec.ProppantDetails)
		if err != nil {
			return 0, common.WrapError(err, "marshal proppant details")
		}
		if details == nil {
			details = ""
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO stimulations (
				well_id, date_stimulated, formation, top_ft, bottom_ft, stages,
				volume, volume_units, treatment_type, acid_percent, lbs_proppant,
				max_pressure_psi, max_rate_bbl_min, proppant_details, raw_details,
				source_document, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			wellID, rec.DateStimulated, rec.Formation, rec.TopFt, rec.BottomFt, rec.Stages,
			rec.Volume, rec.VolumeUnits, rec.TreatmentType, rec.AcidPercent, rec.LbsProppant,
			rec.MaxTreatmentPressurePSI, rec.MaxTreatmentRateBblMin, details, rec.RawDetails,
			sourceDocument, now)
		if err != nil {
			return 0, common.WrapError(err, "insert stimulation")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, common.WrapError(err, "commit extraction")
	}
	r.logger.Debug("saved extraction", "well_id", wellID, "stimulations", len(recs), "source", sourceDocument)
	return wellID, nil
}

func (r *sqliteWellRepository) findOrInsertWell(ctx context.Context, tx *sql.Tx, well *entity.WellRecord, sourceDocument string) (int64, error) {
	var id int64
	if well.FileNumber != "" {
		err := tx.QueryRowContext(ctx, `SELECT id FROM wells WHERE well_file_number = ?`, well.FileNumber).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, common.WrapError(err, "lookup well by file number")
		}
	}
	if well.APINumber != "" {
		err := tx.QueryRowContext(ctx, `SELECT id FROM wells WHERE api_number = ?`, well.APINumber).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, common.WrapError(err, "lookup well by api number")
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO wells (
			well_file_number, api_number, well_name, operator, address, city,
			state, county, zip, latitude, longitude, source_document, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullIfEmpty(well.FileNumber), nullIfEmpty(well.APINumber), well.WellName,
		well.Operator, well.Address, well.City, well.State, well.County, well.Zip,
		well.Latitude, well.Longitude, sourceDocument, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return 0, fmt.Errorf("well %q/%q: %w", well.FileNumber, well.APINumber, common.ErrConflict)
		}
		return 0, common.WrapError(err, "insert well")
	}
	return res.LastInsertId()
}

func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *sqliteWellRepository) ListWells(ctx context.Context) ([]*entity.StoredWell, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, COALESCE(well_file_number, ''), COALESCE(api_number, ''),
			well_name, operator, address, city, state, county, zip,
			latitude, longitude, source_document, created_at,
			drillingedge_url, well_status, well_type, closest_city,
			latest_oil_bbl, latest_gas_mcf, latest_prod_label
		FROM wells ORDER BY id`)
	if err != nil {
		return nil, common.WrapError(err, "list wells")
	}
	defer rows.Close()

	var out []*entity.StoredWell
	for rows.Next() {
		var w entity.StoredWell
		var created string
		err := rows.Scan(&w.ID, &w.FileNumber, &w.APINumber,
			&w.WellName, &w.Operator, &w.Address, &w.City, &w.State, &w.County, &w.Zip,
			&w.Latitude, &w.Longitude, &w.SourceDocument, &created,
			&w.DrillingEdgeURL, &w.WellStatus, &w.WellType, &w.ClosestCity,
			&w.LatestOilBBL, &w.LatestGasMCF, &w.LatestProdLabel)
		if err != nil {
			return nil, common.WrapError(err, "scan well")
		}
		w.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *sqliteWellRepository) ListStimulations(ctx context.Context) ([]*entity.StoredStimulation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, well_id, date_stimulated, formation, top_ft, bottom_ft, stages,
			volume, volume_units, treatment_type, acid_percent, lbs_proppant,
			max_pressure_psi, max_rate_bbl_min, proppant_details, raw_details,
			source_document, created_at
		FROM stimulations ORDER BY well_id, id`)
	if err != nil {
		return nil, common.WrapError(err, "list stimulations")
	}
	defer rows.Close()

	var out []*entity.StoredStimulation
	for rows.Next() {
		var s entity.StoredStimulation
		var details, created string
		err := rows.Scan(&s.ID, &s.WellID, &s.DateStimulated, &s.Formation,
			&s.TopFt, &s.BottomFt, &s.Stages,
			&s.Volume, &s.VolumeUnits, &s.TreatmentType, &s.AcidPercent, &s.LbsProppant,
			&s.MaxTreatmentPressurePSI, &s.MaxTreatmentRateBblMin, &details, &s.RawDetails,
			&s.SourceDocument, &created)
		if err != nil {
			return nil, common.WrapError(err, "scan stimulation")
		}
		s.ProppantDetails = unmarshalDetails(details)
		s.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *sqliteWellRepository) UpdateEnrichment(ctx context.Context, wellID int64, upd EnrichmentUpdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wells SET
			drillingedge_url = ?, well_status = ?, well_type = ?, closest_city = ?,
			latest_oil_bbl = ?, latest_gas_mcf = ?, latest_prod_label = ?
		WHERE id = ?`,
		upd.DrillingEdgeURL, upd.WellStatus, upd.WellType, upd.ClosestCity,
		upd.LatestOilBBL, upd.LatestGasMCF, upd.LatestProdLabel, wellID)
	if err != nil {
		return common.WrapError(err, "update enrichment")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.WrapError(err, "update enrichment")
	}
	if n == 0 {
		return fmt.Errorf("well %d: %w", wellID, common.ErrNotFound)
	}
	return nil
}
