package reconcile

import "context"

// Adapter binds the engine to one kind of named entity.
// Names are compared exactly; the adapter decides what "exists" means.
type Adapter[T any] interface {
	// Kind names the entity for errors and logs (e.g., "author", "genre").
	Kind() string

	// ExistsByName reports whether a persisted entity carries the name.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// FindByName returns the persisted entity carrying the name.
	// When several match, the one with the lowest id wins.
	FindByName(ctx context.Context, name string) (T, error)

	// Create persists a new entity with the name and returns it with its id.
	Create(ctx context.Context, name string) (T, error)
}
