package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/dagcheck"
)

// PGStore implements dagcheck.Recorder using PostgreSQL via pgx.
type PGStore struct {
	db *pgxpool.Pool
}

var _ dagcheck.Recorder = (*PGStore)(nil)

// New creates a new PGStore backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}
