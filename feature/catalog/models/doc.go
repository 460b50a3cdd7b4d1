// Package models holds the catalog entities (Author, Genre, Book) and the error
// vocabulary shared by the stores, the reconciliation engine and the service.
//
// Ids are plain ints where zero means "not persisted yet". Only a store assigns ids.
//
// # Errors
//
// Stores and services return errors wrapping one of the sentinels:
//   - ErrNotFound: lookup by id or name found nothing.
//   - ErrValidation: input rejected before reaching the store.
//   - ErrStorage: backend failure (StoreError unwraps to it).
//   - ErrPersistenceFailed: the store accepted a write but returned no id.
//
// KindOf collapses any of them into an ErrorKind for presentation.
package models
