package catalog

import (
	"context"
	"errors"
	"testing"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/catalog/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingGenres struct {
	store.GenreStore
}

func (failingGenres) ExistsByName(context.Context, string) (bool, error) {
	return false, models.NewStoreError("exists genre", errors.New("timeout"))
}

type genreFailStore struct {
	*memory.Store
}

func (s genreFailStore) Genres() store.GenreStore { return failingGenres{s.Store.Genres()} }

func TestReconciler(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesThenReuses", func(t *testing.T) {
		r := NewReconciler(memory.New())

		b := models.Book{Title: "Dune", Author: models.Author{Name: "Herbert"}, Genre: models.Genre{Name: "SciFi"}}
		out, err := r.Reconcile(ctx, &b)
		require.NoError(t, err)
		assert.Equal(t, Outcome{Author: reconcile.ActionCreated, Genre: reconcile.ActionCreated}, out)
		assert.True(t, b.Author.IsPersisted())
		assert.True(t, b.Genre.IsPersisted())

		again := models.Book{Title: "Dune Messiah", Author: models.Author{Name: "Herbert"}, Genre: models.Genre{Name: "SciFi"}}
		out, err = r.Reconcile(ctx, &again)
		require.NoError(t, err)
		assert.Equal(t, Outcome{Author: reconcile.ActionReused, Genre: reconcile.ActionReused}, out)
		assert.Equal(t, b.Author, again.Author)
		assert.Equal(t, b.Genre, again.Genre)
	})

	t.Run("GenreFailureLeavesBookUntouched", func(t *testing.T) {
		st := genreFailStore{memory.New()}
		r := NewReconciler(st)

		b := models.Book{Title: "Dune", Author: models.Author{Name: "Herbert"}, Genre: models.Genre{Name: "SciFi"}}
		out, err := r.Reconcile(ctx, &b)
		assert.ErrorIs(t, err, models.ErrStorage)
		assert.Equal(t, reconcile.ActionCreated, out.Author)
		assert.Zero(t, b.Author.ID)
		assert.Zero(t, b.Genre.ID)

		// The author was already committed.
		ok, err := st.Authors().ExistsByName(ctx, "Herbert")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestSearchCache(t *testing.T) {
	c, err := newSearchCache(2)
	require.NoError(t, err)

	c.put("a", []models.Book{{ID: 1}})
	c.put("b", []models.Book{{ID: 2}})
	c.put("c", []models.Book{{ID: 3}})
	assert.Equal(t, 2, c.len())

	_, ok := c.get("a")
	assert.False(t, ok, "oldest entry evicted")
	got, ok := c.get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, got[0].ID)
	_, ok = c.get("C")
	assert.False(t, ok, "keys are case-sensitive")

	c.purge()
	assert.Zero(t, c.len())

	var disabled *searchCache
	disabled.put("a", nil)
	_, ok = disabled.get("a")
	assert.False(t, ok)
	disabled.purge()
	assert.Zero(t, disabled.len())
}
