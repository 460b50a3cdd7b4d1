// Package orm implements the catalog store on GORM.
//
// It runs against MySQL or SQLite, depending on how the *gorm.DB was opened
// (see core/database.Connect). Tables are authors, genres and books; New
// creates them when asked to.
//
// Book writes check the referenced author and genre inside the same
// transaction. Title search is pushed down as LOWER(title) LIKE with the
// fragment's wildcards escaped. On SQLite this relies on the Unicode-aware
// lower() installed by core/database.
package orm
