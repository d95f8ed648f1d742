package repository

import (
	"context"
	"log/slog"

	"github.com/rafayelmirijanyan1997/Oil-Wells-Project/internal/common"
)

// OpenFromConfig resolves the configured driver to a repository plus a close
// function. Driver "none" yields a nil repository: callers treat that as
// snapshot-only mode.
func OpenFromConfig(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (WellRepository, func(), error) {
	switch cfg.Driver {
	case "none":
		return nil, func() {}, nil
	case "postgres":
		pool, err := OpenPostgres(ctx, Config{
			DSN:              cfg.DSN,
			MaxConns:         cfg.MaxConns,
			MinConns:         cfg.MinConns,
			MaxConnLifetime:  cfg.MaxConnLifetime,
			MaxConnIdleTime:  cfg.MaxConnIdleTime,
			DialTimeout:      cfg.DialTimeout,
			StatementTimeout: cfg.StatementTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewPostgresWellRepository(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	default:
		db, err := OpenSQLite(cfg.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewSQLiteWellRepository(db, logger)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil
	}
}
