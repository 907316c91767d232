package catalog

import (
	"context"
	"testing"

	"github.com/dsjohal14/catalogsearch/internal/scope/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(id, name string) search.Document {
	return search.Document{ID: id, Name: name}
}

func TestMemCatalogUpsert(t *testing.T) {
	m := NewMemCatalog()

	require.NoError(t, m.Upsert(doc("1", "Vitamin C")))
	require.NoError(t, m.Upsert(doc("2", "Vitamin D3")))
	assert.Equal(t, 2, m.Count())

	t.Run("update keeps position", func(t *testing.T) {
		require.NoError(t, m.Upsert(doc("1", "Vitamin C 1000mg")))

		all := m.All()
		require.Len(t, all, 2)
		assert.Equal(t, "1", all[0].ID)
		assert.Equal(t, "Vitamin C 1000mg", all[0].Name)
	})

	t.Run("rejects missing id", func(t *testing.T) {
		err := m.Upsert(doc(" ", "Nameless"))
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		err := m.Upsert(doc("3", ""))
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Equal(t, 2, m.Count())
	})
}

func TestMemCatalogDelete(t *testing.T) {
	m := NewMemCatalog()
	require.NoError(t, m.Upsert(doc("1", "A")))
	require.NoError(t, m.Upsert(doc("2", "B")))
	require.NoError(t, m.Upsert(doc("3", "C")))

	require.NoError(t, m.Delete("2"))
	assert.ErrorIs(t, m.Delete("2"), ErrNotFound)

	_, ok := m.Get("2")
	assert.False(t, ok)

	ids := []string{}
	m.Range(func(d search.Document) bool {
		ids = append(ids, d.ID)
		return true
	})
	assert.Equal(t, []string{"1", "3"}, ids)
}

func TestMemCatalogReplace(t *testing.T) {
	m := NewMemCatalog()
	require.NoError(t, m.Upsert(doc("old", "Old")))

	err := m.Replace([]search.Document{doc("a", "A"), doc("", "Bad")})
	require.ErrorIs(t, err, ErrInvalidDocument)
	assert.Equal(t, 1, m.Count(), "failed replace must leave catalog untouched")

	require.NoError(t, m.Replace([]search.Document{doc("a", "A"), doc("b", "B"), doc("a", "A2")}))
	all := m.All()
	require.Len(t, all, 2)
	assert.Equal(t, "A2", all[0].Name)
	assert.Equal(t, "b", all[1].ID)
}

func TestMemCatalogSnapshotIsCopy(t *testing.T) {
	m := NewMemCatalog()
	require.NoError(t, m.Upsert(doc("1", "Vitamin")))

	snap, err := m.Snapshot(context.Background())
	require.NoError(t, err)
	snap[0].Name = "changed"

	got, ok := m.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Vitamin", got.Name)
}

func TestMemCatalogSnapshotCanceled(t *testing.T) {
	m := NewMemCatalog()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemCatalogRangeStops(t *testing.T) {
	m := NewMemCatalog()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, m.Upsert(doc(id, "Item "+id)))
	}

	visited := 0
	m.Range(func(search.Document) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}
