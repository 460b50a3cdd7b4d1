// Package storetest provides the behavioural suite every store backend must pass.
package storetest

import (
	"context"
	"testing"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Opener returns a fresh, empty store for one subtest.
type Opener func(t *testing.T) store.Store

// Run executes the full contract suite against the backend produced by open.
func Run(t *testing.T, open Opener) {
	t.Run("Authors", func(t *testing.T) {
		runNamed(t, open, func(s store.Store) store.NamedStore[models.Author] { return s.Authors() }, namedOps[models.Author]{
			build:  func(name string) models.Author { return models.Author{Name: name} },
			name:   func(a models.Author) string { return a.Name },
			id:     func(a models.Author) int { return a.ID },
			rename: func(a models.Author, name string) models.Author { a.Name = name; return a },
			withID: func(a models.Author, id int) models.Author { a.ID = id; return a },
		})
	})

	t.Run("Genres", func(t *testing.T) {
		runNamed(t, open, func(s store.Store) store.NamedStore[models.Genre] { return s.Genres() }, namedOps[models.Genre]{
			build:  func(name string) models.Genre { return models.Genre{Name: name} },
			name:   func(g models.Genre) string { return g.Name },
			id:     func(g models.Genre) int { return g.ID },
			rename: func(g models.Genre, name string) models.Genre { g.Name = name; return g },
			withID: func(g models.Genre, id int) models.Genre { g.ID = id; return g },
		})
	})

	t.Run("Books", func(t *testing.T) {
		runBooks(t, open)
	})
}

type namedOps[T any] struct {
	build  func(name string) T
	name   func(T) string
	id     func(T) int
	rename func(T, string) T
	withID func(T, int) T
}

func runNamed[T any](t *testing.T, open Opener, pick func(store.Store) store.NamedStore[T], ops namedOps[T]) {
	ctx := context.Background()

	t.Run("ReadAllEmpty", func(t *testing.T) {
		s := pick(open(t))
		all, err := s.ReadAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("AddAssignsID", func(t *testing.T) {
		s := pick(open(t))
		first, err := s.Add(ctx, ops.build("Herbert"))
		require.NoError(t, err)
		second, err := s.Add(ctx, ops.build("Asimov"))
		require.NoError(t, err)

		assert.Positive(t, ops.id(first))
		assert.Positive(t, ops.id(second))
		assert.NotEqual(t, ops.id(first), ops.id(second))
		assert.Equal(t, "Herbert", ops.name(first))
	})

	t.Run("FindByNameExactMatch", func(t *testing.T) {
		s := pick(open(t))
		added, err := s.Add(ctx, ops.build("Herbert"))
		require.NoError(t, err)

		found, err := s.FindByName(ctx, "Herbert")
		require.NoError(t, err)
		assert.Equal(t, ops.id(added), ops.id(found))

		_, err = s.FindByName(ctx, "herbert")
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = s.FindByName(ctx, "Herb")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("ExistsByNameAndID", func(t *testing.T) {
		s := pick(open(t))
		added, err := s.Add(ctx, ops.build("Herbert"))
		require.NoError(t, err)

		ok, err := s.ExistsByName(ctx, "Herbert")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.ExistsByName(ctx, "HERBERT")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.ExistsByID(ctx, ops.id(added))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.ExistsByID(ctx, ops.id(added)+100)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		s := pick(open(t))
		_, err := s.FindByID(ctx, 999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("ReadAllOrderedByID", func(t *testing.T) {
		s := pick(open(t))
		for _, n := range []string{"C", "A", "B"} {
			_, err := s.Add(ctx, ops.build(n))
			require.NoError(t, err)
		}
		all, err := s.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "C", ops.name(all[0]))
		assert.Equal(t, "A", ops.name(all[1]))
		assert.Equal(t, "B", ops.name(all[2]))
	})

	t.Run("EditRenames", func(t *testing.T) {
		s := pick(open(t))
		added, err := s.Add(ctx, ops.build("Herbert"))
		require.NoError(t, err)

		require.NoError(t, s.Edit(ctx, ops.rename(added, "Frank Herbert")))

		found, err := s.FindByID(ctx, ops.id(added))
		require.NoError(t, err)
		assert.Equal(t, "Frank Herbert", ops.name(found))

		ok, err := s.ExistsByName(ctx, "Herbert")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EditMissing", func(t *testing.T) {
		s := pick(open(t))
		_, err := s.Add(ctx, ops.build("Herbert"))
		require.NoError(t, err)

		err = s.Edit(ctx, ops.withID(ops.build("Ghost"), 999))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		s := pick(open(t))
		added, err := s.Add(ctx, ops.build("Herbert"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, ops.id(added)))

		ok, err := s.ExistsByID(ctx, ops.id(added))
		require.NoError(t, err)
		assert.False(t, ok)

		assert.ErrorIs(t, s.Delete(ctx, ops.id(added)), models.ErrNotFound)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		s := pick(open(t))
		for _, n := range []string{"A", "B"} {
			_, err := s.Add(ctx, ops.build(n))
			require.NoError(t, err)
		}
		require.NoError(t, s.DeleteAll(ctx))

		all, err := s.ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func runBooks(t *testing.T, open Opener) {
	ctx := context.Background()

	seed := func(t *testing.T, s store.Store) (models.Author, models.Genre) {
		t.Helper()
		a, err := s.Authors().Add(ctx, models.Author{Name: "Herbert"})
		require.NoError(t, err)
		g, err := s.Genres().Add(ctx, models.Genre{Name: "SciFi"})
		require.NoError(t, err)
		return a, g
	}

	t.Run("AddAndReadBack", func(t *testing.T) {
		s := open(t)
		a, g := seed(t, s)

		added, err := s.Books().Add(ctx, models.Book{Title: "Dune", Description: "Spice", Author: a, Genre: g})
		require.NoError(t, err)
		assert.Positive(t, added.ID)

		found, err := s.Books().FindByID(ctx, added.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", found.Title)
		assert.Equal(t, "Spice", found.Description)
		assert.Equal(t, a, found.Author)
		assert.Equal(t, g, found.Genre)

		all, err := s.Books().ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, found, all[0])
	})

	t.Run("AddRejectsDanglingReference", func(t *testing.T) {
		s := open(t)
		a, _ := seed(t, s)

		_, err := s.Books().Add(ctx, models.Book{Title: "Dune", Author: a, Genre: models.Genre{ID: 999, Name: "Ghost"}})
		assert.ErrorIs(t, err, models.ErrStorage)

		all, err := s.Books().ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("SearchByTitle", func(t *testing.T) {
		s := open(t)
		a, g := seed(t, s)
		for _, title := range []string{"Dune", "Dune Messiah", "Children of Dune", "Foundation", "100% Pure"} {
			_, err := s.Books().Add(ctx, models.Book{Title: title, Author: a, Genre: g})
			require.NoError(t, err)
		}

		found, err := s.Books().SearchByTitle(ctx, "dUnE")
		require.NoError(t, err)
		assert.Len(t, found, 3)

		found, err = s.Books().SearchByTitle(ctx, "messiah")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Dune Messiah", found[0].Title)
		assert.Equal(t, "Herbert", found[0].Author.Name)

		found, err = s.Books().SearchByTitle(ctx, "0%")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "100% Pure", found[0].Title)

		found, err = s.Books().SearchByTitle(ctx, "Dune_")
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = s.Books().SearchByTitle(ctx, "nothing here")
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})

	t.Run("SearchByTitleIgnoresNonASCIICase", func(t *testing.T) {
		s := open(t)
		a, g := seed(t, s)
		for _, title := range []string{"Война и мир", "Анна Каренина", "Über Alles"} {
			_, err := s.Books().Add(ctx, models.Book{Title: title, Author: a, Genre: g})
			require.NoError(t, err)
		}

		for _, fragment := range []string{"война", "ВОЙНА", "Война", "И МИР", "über", "ÜBER"} {
			found, err := s.Books().SearchByTitle(ctx, fragment)
			require.NoError(t, err, fragment)
			require.Len(t, found, 1, fragment)
		}

		found, err := s.Books().SearchByTitle(ctx, "анна")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Анна Каренина", found[0].Title)
	})

	t.Run("Edit", func(t *testing.T) {
		s := open(t)
		a, g := seed(t, s)
		other, err := s.Authors().Add(ctx, models.Author{Name: "Asimov"})
		require.NoError(t, err)

		added, err := s.Books().Add(ctx, models.Book{Title: "Dune", Author: a, Genre: g})
		require.NoError(t, err)

		added.Title = "Foundation"
		added.Description = "Psychohistory"
		added.Author = other
		require.NoError(t, s.Books().Edit(ctx, added))

		found, err := s.Books().FindByID(ctx, added.ID)
		require.NoError(t, err)
		assert.Equal(t, "Foundation", found.Title)
		assert.Equal(t, "Psychohistory", found.Description)
		assert.Equal(t, other, found.Author)
		assert.Equal(t, g, found.Genre)

		added.ID = 999
		assert.ErrorIs(t, s.Books().Edit(ctx, added), models.ErrNotFound)
	})

	t.Run("DeleteThenExists", func(t *testing.T) {
		s := open(t)
		a, g := seed(t, s)
		added, err := s.Books().Add(ctx, models.Book{Title: "Dune", Author: a, Genre: g})
		require.NoError(t, err)

		require.NoError(t, s.Books().Delete(ctx, added.ID))
		ok, err := s.Books().ExistsByID(ctx, added.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		// Deleting a book leaves its author and genre alone.
		ok, err = s.Authors().ExistsByID(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.Genres().ExistsByID(ctx, g.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("References", func(t *testing.T) {
		s := open(t)
		a, g := seed(t, s)
		other, err := s.Authors().Add(ctx, models.Author{Name: "Asimov"})
		require.NoError(t, err)

		for _, b := range []models.Book{
			{Title: "Dune", Author: a, Genre: g},
			{Title: "Dune Messiah", Author: a, Genre: g},
			{Title: "Foundation", Author: other, Genre: g},
		} {
			_, err := s.Books().Add(ctx, b)
			require.NoError(t, err)
		}

		n, err := s.Books().CountReferences(ctx, models.RefAuthor, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = s.Books().CountReferences(ctx, models.RefGenre, g.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = s.Books().DeleteReferencing(ctx, models.RefAuthor, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		all, err := s.Books().ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Foundation", all[0].Title)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		s := open(t)
		a, g := seed(t, s)
		_, err := s.Books().Add(ctx, models.Book{Title: "Dune", Author: a, Genre: g})
		require.NoError(t, err)

		require.NoError(t, s.Books().DeleteAll(ctx))
		all, err := s.Books().ReadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
