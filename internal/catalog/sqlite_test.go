package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonathan/hirehub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_ImportAndList(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	seed, err := NewDefault(Latency{})
	require.NoError(t, err)
	want, err := seed.ListJobs(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Import(ctx, want))

	got, err := s.ListJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLite_GetJob(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	require.NoError(t, s.Import(ctx, []types.Job{
		{ID: "a", Title: "Go Dev", Company: "Acme", Location: "Remote", Benefits: []string{"Equity"}},
	}))

	job, err := s.GetJob(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "Go Dev", job.Title)
	assert.Equal(t, []string{"Equity"}, job.Benefits)
	assert.Equal(t, []string{}, job.Responsibilities)

	missing, err := s.GetJob(ctx, "missing-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLite_ListLocations(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	require.NoError(t, s.Import(ctx, testJobs()))

	locations, err := s.ListLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Remote", "London, UK"}, locations)
}

func TestSQLite_ImportReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	require.NoError(t, s.Import(ctx, testJobs()))
	require.NoError(t, s.Import(ctx, testJobs()[:1]))

	jobs, err := s.ListJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
