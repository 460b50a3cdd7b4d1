// Package catalog implements the book catalog: adding, finding, listing, editing
// and deleting books, plus managing their authors and genres.
//
// # Reconciliation
//
// Books name their author and genre; they do not carry ids from the user. Before
// a book is written, Reconciler resolves both names through core/reconcile: an
// exact, case-sensitive name match is reused, anything else is created. Adding
// two books by "Herbert" therefore yields one author.
//
// Each store call is its own unit of work. If the book write fails after an
// author or genre was created, that author or genre remains, unreferenced.
//
// # Search cache
//
// FindBooksByName memoizes results in a bounded LRU keyed by the lower-cased
// fragment. Any write purges it entirely.
//
// # Deleting authors and genres
//
// With Config.CascadeDelete the books of a deleted author or genre are deleted
// first. Without it, the delete fails with models.ErrInUse while books reference it.
//
// # Usage
//
//	svc, err := catalog.NewService(st, cfg.Catalog, log)
//	book, err := svc.AddBook(ctx, models.Book{
//	    Title:  "Dune",
//	    Author: models.Author{Name: "Herbert"},
//	    Genre:  models.Genre{Name: "SciFi"},
//	})
package catalog
