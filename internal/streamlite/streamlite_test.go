package streamlite

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/dsjohal14/catalogsearch/internal/scope/search"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct {
	calls atomic.Int32
}

func (f *failingSource) Snapshot(context.Context) ([]search.Document, error) {
	f.calls.Add(1)
	return nil, errors.New("database unavailable")
}

func newSource(t *testing.T, docs ...search.Document) *catalog.MemCatalog {
	t.Helper()
	src := catalog.NewMemCatalog()
	for _, d := range docs {
		require.NoError(t, src.Upsert(d))
	}
	return src
}

func TestCatalogSyncOnce(t *testing.T) {
	src := newSource(t,
		search.Document{ID: "1", Name: "Vitamin C"},
		search.Document{ID: "2", Name: "Vitamin D3"},
	)
	target := catalog.NewMemCatalog()
	require.NoError(t, target.Upsert(search.Document{ID: "stale", Name: "Old"}))

	c := NewCatalogSync("test", src, target, time.Hour, zerolog.Nop())

	n, err := c.SyncOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, target.Count())

	_, ok := target.Get("stale")
	assert.False(t, ok, "stale document should be replaced")

	status := c.Status()
	assert.Equal(t, 1, status.Syncs)
	assert.Equal(t, 2, status.Docs)
	assert.NoError(t, status.LastError)
}

type sliceSource []search.Document

func (s sliceSource) Snapshot(context.Context) ([]search.Document, error) {
	return s, nil
}

func TestCatalogSyncSkipsInvalid(t *testing.T) {
	src := sliceSource{
		{ID: "1", Name: "Vitamin C"},
		{ID: "2", Name: ""},
		{ID: "", Name: "No id"},
	}
	target := catalog.NewMemCatalog()

	c := NewCatalogSync("test", src, target, time.Hour, zerolog.Nop())
	n, err := c.SyncOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Equal(t, 2, c.Status().Skipped)
}

func TestCatalogSyncFailureKeepsTarget(t *testing.T) {
	target := catalog.NewMemCatalog()
	require.NoError(t, target.Upsert(search.Document{ID: "1", Name: "Vitamin C"}))

	c := NewCatalogSync("test", &failingSource{}, target, time.Hour, zerolog.Nop())
	_, err := c.SyncOnce(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, target.Count())
	assert.Error(t, c.Status().LastError)
}

func TestCatalogSyncStartStop(t *testing.T) {
	src := newSource(t, search.Document{ID: "1", Name: "Vitamin C"})
	target := catalog.NewMemCatalog()

	c := NewCatalogSync("test", src, target, 10*time.Millisecond, zerolog.Nop())
	assert.Equal(t, "test", c.Name())

	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyStarted)

	assert.Eventually(t, func() bool {
		return c.Status().Syncs >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Stop())
	assert.ErrorIs(t, c.Stop(), ErrNotStarted)
	assert.Equal(t, 1, target.Count())
	assert.False(t, c.Status().StartedAt.IsZero())
}

func TestCatalogSyncRetriesAfterFailure(t *testing.T) {
	src := &failingSource{}
	c := NewCatalogSync("test", src, catalog.NewMemCatalog(), 10*time.Millisecond, zerolog.Nop())

	require.NoError(t, c.Start(context.Background()))
	defer func() { _ = c.Stop() }()

	assert.Eventually(t, func() bool {
		return src.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestCatalogSyncStopsWithContext(t *testing.T) {
	src := newSource(t, search.Document{ID: "1", Name: "A"})
	c := NewCatalogSync("test", src, catalog.NewMemCatalog(), time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Start(ctx))
	cancel()

	// Stop still returns once the loop has exited on its own
	require.NoError(t, c.Stop())
}
