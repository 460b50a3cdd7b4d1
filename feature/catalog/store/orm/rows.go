package orm

import "catalog-manager/feature/catalog/models"

// authorRow represents the 'authors' table.
type authorRow struct {
	ID   int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;size:255;not null;index"`
}

// TableName overrides the table name.
func (authorRow) TableName() string {
	return "authors"
}

func (r authorRow) toModel() models.Author {
	return models.Author{ID: r.ID, Name: r.Name}
}

// genreRow represents the 'genres' table.
type genreRow struct {
	ID   int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;size:255;not null;index"`
}

// TableName overrides the table name.
func (genreRow) TableName() string {
	return "genres"
}

func (r genreRow) toModel() models.Genre {
	return models.Genre{ID: r.ID, Name: r.Name}
}

// bookRow represents the 'books' table. Author and Genre are read-only joins.
type bookRow struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;size:255;not null"`
	AuthorID    int       `gorm:"column:author_id;not null;index"`
	Description string    `gorm:"column:description;type:text"`
	GenreID     int       `gorm:"column:genre_id;not null;index"`
	Author      authorRow `gorm:"foreignKey:AuthorID"`
	Genre       genreRow  `gorm:"foreignKey:GenreID"`
}

// TableName overrides the table name.
func (bookRow) TableName() string {
	return "books"
}

func (r bookRow) toModel() models.Book {
	return models.Book{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Author:      r.Author.toModel(),
		Genre:       r.Genre.toModel(),
	}
}

func newBookRow(b models.Book) bookRow {
	return bookRow{
		ID:          b.ID,
		Title:       b.Title,
		AuthorID:    b.Author.ID,
		Description: b.Description,
		GenreID:     b.Genre.ID,
	}
}

// Columns lists the columns each table must carry, keyed by table name.
var Columns = map[string][]string{
	"authors": {"id", "name"},
	"genres":  {"id", "name"},
	"books":   {"id", "title", "author_id", "description", "genre_id"},
}
