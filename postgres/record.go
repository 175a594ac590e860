package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/dagcheck"
)

// Record inserts a classification record.
// If rec.ID is empty, a UUID is auto-generated.
// CreatedAt is filled in from the database.
// Returns the record ID (generated or provided).
func (s *PGStore) Record(ctx context.Context, rec *dagcheck.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO dag_classifications (id, request_id, num_nodes, num_edges, is_dag, error)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		rec.ID, rec.RequestID, rec.NumNodes, rec.NumEdges, rec.IsDAG, rec.Error,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("dagcheck: insert record: %w", err)
	}

	return rec.ID, nil
}

// GetRecord fetches a single record by its ID.
// Returns nil, nil if not found.
func (s *PGStore) GetRecord(ctx context.Context, id string) (*dagcheck.Record, error) {
	var r dagcheck.Record
	err := s.db.QueryRow(ctx,
		`SELECT id, request_id, num_nodes, num_edges, is_dag, error, created_at
		 FROM dag_classifications WHERE id = $1`, id,
	).Scan(&r.ID, &r.RequestID, &r.NumNodes, &r.NumEdges, &r.IsDAG, &r.Error, &r.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("dagcheck: get record: %w", err)
	}

	return &r, nil
}

// ListRecords returns up to limit records, newest first.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListRecords(ctx context.Context, limit int) ([]dagcheck.Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, request_id, num_nodes, num_edges, is_dag, error, created_at
		 FROM dag_classifications ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("dagcheck: list records: %w", err)
	}
	defer rows.Close()

	records := []dagcheck.Record{}
	for rows.Next() {
		var r dagcheck.Record
		if err := rows.Scan(&r.ID, &r.RequestID, &r.NumNodes, &r.NumEdges, &r.IsDAG, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("dagcheck: scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dagcheck: rows records: %w", err)
	}

	return records, nil
}
