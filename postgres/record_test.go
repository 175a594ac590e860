package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/dagcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to DAGCHECK_TEST_DATABASE_URL and starts from an
// empty schema. Tests are skipped when it is unset.
func newTestStore(t *testing.T) *PGStore {
	t.Helper()
	url := os.Getenv("DAGCHECK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("DAGCHECK_TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := New(pool)
	require.NoError(t, s.DropSchema(ctx))
	require.NoError(t, s.CreateSchema(ctx))
	t.Cleanup(func() { _ = s.DropSchema(context.Background()) })
	return s
}

func TestPGStore_RecordAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &dagcheck.Record{RequestID: "req-1", NumNodes: 3, NumEdges: 2, IsDAG: true}
	id, err := s.Record(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.GetRecord(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, 3, got.NumNodes)
	assert.Equal(t, 2, got.NumEdges)
	assert.True(t, got.IsDAG)
	assert.Empty(t, got.Error)
}

func TestPGStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetRecord(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPGStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.ListRecords(ctx, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, n := range []int{1, 2, 3} {
		_, err := s.Record(ctx, &dagcheck.Record{NumNodes: n})
		require.NoError(t, err)
	}

	got, err := s.ListRecords(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].NumNodes)
	assert.Equal(t, 2, got[1].NumNodes)
}
