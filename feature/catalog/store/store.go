package store

import (
	"context"

	"catalog-manager/feature/catalog/models"
)

// EntityStore is the persistence contract shared by every catalog entity.
type EntityStore[T any] interface {
	// Add persists a new record and returns it with its assigned id.
	Add(ctx context.Context, entity T) (T, error)
	// FindByID returns the record or an error wrapping models.ErrNotFound.
	FindByID(ctx context.Context, id int) (T, error)
	// ExistsByID reports whether a record with the id exists.
	ExistsByID(ctx context.Context, id int) (bool, error)
	// ReadAll returns every record ordered by id. Never nil.
	ReadAll(ctx context.Context) ([]T, error)
	// Edit replaces the record keyed by the entity id.
	Edit(ctx context.Context, entity T) error
	// Delete removes the record with the id.
	Delete(ctx context.Context, id int) error
	// DeleteAll clears every record. Used by reset flows only.
	DeleteAll(ctx context.Context) error
}

// NamedStore adds name lookups for entities reconciled by name.
type NamedStore[T any] interface {
	EntityStore[T]
	// FindByName returns the exact, case-sensitive match with the lowest id.
	FindByName(ctx context.Context, name string) (T, error)
	// ExistsByName reports whether an exact, case-sensitive match exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// AuthorStore persists authors.
type AuthorStore = NamedStore[models.Author]

// GenreStore persists genres.
type GenreStore = NamedStore[models.Genre]

// BookStore persists books.
type BookStore interface {
	EntityStore[models.Book]
	// SearchByTitle returns books whose title contains fragment, ignoring case.
	SearchByTitle(ctx context.Context, fragment string) ([]models.Book, error)
	// CountReferences counts books holding the given author or genre id.
	CountReferences(ctx context.Context, ref models.RefKind, id int) (int, error)
	// DeleteReferencing removes books holding the given author or genre id.
	DeleteReferencing(ctx context.Context, ref models.RefKind, id int) (int, error)
}

// Store bundles the three entity stores of one backend.
type Store interface {
	Authors() AuthorStore
	Genres() GenreStore
	Books() BookStore
	Close() error
}
