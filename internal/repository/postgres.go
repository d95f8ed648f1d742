package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/entity"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS wells (
	id BIGSERIAL PRIMARY KEY,
	well_file_number TEXT UNIQUE,
	api_number TEXT UNIQUE,
	well_name TEXT NOT NULL DEFAULT '',
	operator TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	county TEXT NOT NULL DEFAULT '',
	zip TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	source_document TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	drillingedge_url TEXT NOT NULL DEFAULT '',
	well_status TEXT NOT NULL DEFAULT '',
	well_type TEXT NOT NULL DEFAULT '',
	closest_city TEXT NOT NULL DEFAULT '',
	latest_oil_bbl DOUBLE PRECISION,
	latest_gas_mcf DOUBLE PRECISION,
	latest_prod_label TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS stimulations (
	id BIGSERIAL PRIMARY KEY,
	well_id BIGINT NOT NULL REFERENCES wells(id),
	date_stimulated TEXT NOT NULL DEFAULT '',
	formation TEXT NOT NULL DEFAULT '',
	top_ft INTEGER,
	bottom_ft INTEGER,
	stages INTEGER,
	volume DOUBLE PRECISION,
	volume_units TEXT NOT NULL DEFAULT '',
	treatment_type TEXT NOT NULL DEFAULT '',
	acid_percent DOUBLE PRECISION,
	lbs_proppant DOUBLE PRECISION,
	max_pressure_psi DOUBLE PRECISION,
	max_rate_bbl_min DOUBLE PRECISION,
	proppant_details TEXT NOT NULL DEFAULT '',
	raw_details TEXT NOT NULL DEFAULT '',
	source_document TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_stimulations_well_id ON stimulations(well_id);
`

type postgresWellRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresWellRepository bootstraps the schema and returns a repository
// over the given pool.
func NewPostgresWellRepository(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (WellRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, common.WrapError(err, "ensure postgres schema")
	}
	return &postgresWellRepository{pool: pool, logger: logger}, nil
}

func (r *postgresWellRepository) SaveExtraction(ctx context.Context, well *entity.WellRecord, recs []entity.StimulationRecord, sourceDocument string) (int64, error) {
	if err := validateWell(well, sourceDocument); err != nil {
		return 0, err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, common.WrapError(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	wellID, err := r.findOrInsertWell(ctx, tx, well, sourceDocument)
	if err != nil {
		return 0, err
	}

	for _, rec := range recs {
		details, err := marshalDetails(rec.ProppantDetails)
		if err != nil {
			return 0, common.WrapError(err, "marshal proppant details")
		}
		if details == nil {
			details = ""
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO stimulations (
				well_id, date_stimulated, formation, top_ft, bottom_ft, stages,
				volume, volume_units, treatment_type, acid_percent, lbs_proppant,
				max_pressure_psi, max_rate_bbl_min, proppant_details, raw_details,
				source_document
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			wellID, rec.DateStimulated, rec.Formation, rec.TopFt, rec.BottomFt, rec.Stages,
			rec.Volume, rec.VolumeUnits, rec.TreatmentType, rec.AcidPercent, rec.LbsProppant,
			rec.MaxTreatmentPressurePSI, rec.MaxTreatmentRateBblMin, details, rec.RawDetails,
			sourceDocument)
		if err != nil {
			return 0, common.WrapError(err, "insert stimulation")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, common.WrapError(err, "commit extraction")
	}
	r.logger.Debug("saved extraction", "well_id", wellID, "stimulations", len(recs), "source", sourceDocument)
	return wellID, nil
}

func (r *postgresWellRepository) findOrInsertWell(ctx context.Context, tx pgx.Tx, well *entity.WellRecord, sourceDocument string) (int64, error) {
	var id int64
	if well.FileNumber != "" {
		err := tx.QueryRow(ctx, `SELECT id FROM wells WHERE well_file_number = $1`, well.FileNumber).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, common.WrapError(err, "lookup well by file number")
		}
	}
	if well.APINumber != "" {
		err := tx.QueryRow(ctx, `SELECT id FROM wells WHERE api_number = $1`, well.APINumber).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, common.WrapError(err, "lookup well by api number")
		}
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO wells (
			well_file_number, api_number, well_name, operator, address, city,
			state, county, zip, latitude, longitude, source_document
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		nullIfEmpty(well.FileNumber), nullIfEmpty(well.APINumber), well.WellName,
		well.Operator, well.Address, well.City, well.State, well.County, well.Zip,
		well.Latitude, well.Longitude, sourceDocument).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("well %q/%q: %w", well.FileNumber, well.APINumber, common.ErrConflict)
		}
		return 0, common.WrapError(err, "insert well")
	}
	return id, nil
}

func (r *postgresWellRepository) ListWells(ctx context.Context) ([]*entity.StoredWell, error) {
	rows, err := r.pool.Query(ctx, `
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
		err := rows.Scan(&w.ID, &w.FileNumber, &w.APINumber,
			&w.WellName, &w.Operator, &w.Address, &w.City, &w.State, &w.County, &w.Zip,
			&w.Latitude, &w.Longitude, &w.SourceDocument, &w.CreatedAt,
			&w.DrillingEdgeURL, &w.WellStatus, &w.WellType, &w.ClosestCity,
			&w.LatestOilBBL, &w.LatestGasMCF, &w.LatestProdLabel)
		if err != nil {
			return nil, common.WrapError(err, "scan well")
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *postgresWellRepository) ListStimulations(ctx context.Context) ([]*entity.StoredStimulation, error) {
	rows, err := r.pool.Query(ctx, `
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
		var details string
		err := rows.Scan(&s.ID, &s.WellID, &s.DateStimulated, &s.Formation,
			&s.TopFt, &s.BottomFt, &s.Stages,
			&s.Volume, &s.VolumeUnits, &s.TreatmentType, &s.AcidPercent, &s.LbsProppant,
			&s.MaxTreatmentPressurePSI, &s.MaxTreatmentRateBblMin, &details, &s.RawDetails,
			&s.SourceDocument, &s.CreatedAt)
		if err != nil {
			return nil, common.WrapError(err, "scan stimulation")
		}
		s.ProppantDetails = unmarshalDetails(details)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *postgresWellRepository) UpdateEnrichment(ctx context.Context, wellID int64, upd EnrichmentUpdate) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE wells SET
			drillingedge_url = $1, well_status = $2, well_type = $3, closest_city = $4,
			latest_oil_bbl = $5, latest_gas_mcf = $6, latest_prod_label = $7
		WHERE id = $8`,
		upd.DrillingEdgeURL, upd.WellStatus, upd.WellType, upd.ClosestCity,
		upd.LatestOilBBL, upd.LatestGasMCF, upd.LatestProdLabel, wellID)
	if err != nil {
		return common.WrapError(err, "update enrichment")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("well %d: %w", wellID, common.ErrNotFound)
	}
	return nil
}
