// Package store defines the persistence contract for the catalog.
//
// One Store bundles an AuthorStore, a GenreStore and a BookStore. Backends are
// interchangeable and chosen at startup through Config.Backend:
//
//   - orm: GORM over MySQL or SQLite (package orm).
//   - sql: hand-built statements via squirrel over database/sql (package sqlstore).
//   - csv: flat CSV files on a local directory or an object storage bucket (package csvfile).
//   - memory: process-local maps, used for tests and throwaway sessions (package memory).
//
// # Contract
//
// Each call is one unit of work against the backend. There is no cross-entity
// transaction: creating an author and then a book are two separate commits.
//
// Lookups that find nothing return an error wrapping models.ErrNotFound. All other
// failures wrap models.ErrStorage and are never swallowed.
//
// The storetest package holds a behavioural suite every backend runs in its tests.
package store
