package reconcile

import (
	"context"
	"fmt"
)

// Resolve maps a name to a persisted entity, creating it when missing.
//
// The existence check and the create are separate store calls, so a concurrent
// writer could slip in between. Callers run single-threaded.
func Resolve[T any](ctx context.Context, a Adapter[T], name string) (Result[T], error) {
	exists, err := a.ExistsByName(ctx, name)
	if err != nil {
		return Result[T]{}, fmt.Errorf("check %s %q: %w", a.Kind(), name, err)
	}

	if !exists {
		created, err := a.Create(ctx, name)
		if err != nil {
			return Result[T]{}, fmt.Errorf("create %s %q: %w", a.Kind(), name, err)
		}
		return Result[T]{Entity: created, Action: ActionCreated}, nil
	}

	found, err := a.FindByName(ctx, name)
	if err != nil {
		return Result[T]{}, fmt.Errorf("find %s %q: %w", a.Kind(), name, err)
	}
	return Result[T]{Entity: found, Action: ActionReused}, nil
}
