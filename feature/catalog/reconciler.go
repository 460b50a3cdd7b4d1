package catalog

import (
	"context"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"
)

// storeAdapter exposes a named store to the reconcile engine.
type storeAdapter[T any] struct {
	kind  models.RefKind
	store store.NamedStore[T]
	build func(name string) T
}

func (a storeAdapter[T]) Kind() string {
	return string(a.kind)
}

func (a storeAdapter[T]) ExistsByName(ctx context.Context, name string) (bool, error) {
	return a.store.ExistsByName(ctx, name)
}

func (a storeAdapter[T]) FindByName(ctx context.Context, name string) (T, error) {
	return a.store.FindByName(ctx, name)
}

func (a storeAdapter[T]) Create(ctx context.Context, name string) (T, error) {
	return a.store.Add(ctx, a.build(name))
}

func authorAdapter(s store.Store) storeAdapter[models.Author] {
	return storeAdapter[models.Author]{
		kind:  models.RefAuthor,
		store: s.Authors(),
		build: func(name string) models.Author { return models.Author{Name: name} },
	}
}

func genreAdapter(s store.Store) storeAdapter[models.Genre] {
	return storeAdapter[models.Genre]{
		kind:  models.RefGenre,
		store: s.Genres(),
		build: func(name string) models.Genre { return models.Genre{Name: name} },
	}
}

// Outcome reports how a book's references were resolved.
type Outcome struct {
	Author reconcile.Action
	Genre  reconcile.Action
}

// Reconciler resolves a book's author and genre names to persisted entities.
type Reconciler struct {
	authors storeAdapter[models.Author]
	genres  storeAdapter[models.Genre]
}

// NewReconciler creates a reconciler over the store's author and genre stores.
func NewReconciler(s store.Store) *Reconciler {
	return &Reconciler{
		authors: authorAdapter(s),
		genres:  genreAdapter(s),
	}
}

// Reconcile resolves the author, then the genre, by exact name.
// The book is only updated once both resolved. An author created before a
// failing genre stays in the store.
func (r *Reconciler) Reconcile(ctx context.Context, book *models.Book) (Outcome, error) {
	author, err := reconcile.Resolve[models.Author](ctx, r.authors, book.Author.Name)
	if err != nil {
		return Outcome{}, err
	}

	genre, err := reconcile.Resolve[models.Genre](ctx, r.genres, book.Genre.Name)
	if err != nil {
		return Outcome{Author: author.Action}, err
	}

	book.Author = author.Entity
	book.Genre = genre.Entity
	return Outcome{Author: author.Action, Genre: genre.Action}, nil
}
