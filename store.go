package dagcheck

import (
	"context"
	"time"
)

// Record is one audited classification request. It carries counts and the
// outcome only; node and edge identifiers are never stored.
type Record struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	NumNodes  int       `json:"num_nodes"`
	NumEdges  int       `json:"num_edges"`
	IsDAG     bool      `json:"is_dag"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder defines the contract for the classification audit log.
type Recorder interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Records
	Record(ctx context.Context, rec *Record) (string, error)
	GetRecord(ctx context.Context, id string) (*Record, error)
	ListRecords(ctx context.Context, limit int) ([]Record, error)
}
