// Package reconcile resolves entity names to persisted entities.
//
// Given a name, Resolve asks the Adapter whether an entity with that exact name
// exists. If it does, the existing entity is returned; otherwise a new one is
// created. Repeating the call with the same name never creates a second entity.
//
// # Adapters
//
// An Adapter binds the engine to one entity kind and its store. The engine itself
// knows nothing about storage, so the same algorithm serves authors, genres or
// any other entity keyed by name.
//
// # Usage
//
//	res, err := reconcile.Resolve[models.Author](ctx, authorAdapter, "Frank Herbert")
//	if err != nil {
//	    return err
//	}
//	book.Author = res.Entity // res.Action is ActionCreated or ActionReused
//
// # Consistency
//
// Existence check and create are two store calls with no lock between them.
// Each is its own unit of work; a failure after a create leaves the created
// entity in place.
package reconcile
