package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS dag_classifications (
    id         TEXT PRIMARY KEY,
    request_id TEXT NOT NULL DEFAULT '',
    num_nodes  INTEGER NOT NULL,
    num_edges  INTEGER NOT NULL,
    is_dag     BOOLEAN NOT NULL,
    error      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_dag_classifications_created_at ON dag_classifications(created_at DESC);
`

// CreateSchema creates the dag_classifications table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the dag_classifications table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS dag_classifications CASCADE;`)
	return err
}
