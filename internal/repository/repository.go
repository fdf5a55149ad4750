package repository

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/UnknownOlympus/pinpoint/internal/mapsurface"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repository needs, pgxmock pools satisfy it too.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is a map surface persisted in PostgreSQL, so that any renderer reading
// the map_view and map_markers tables shows what the pipeline placed.
type Repository struct {
	db       Database
	log      *slog.Logger
	disposed atomic.Bool
}

var _ mapsurface.Map = (*Repository)(nil)

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
