package models

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Author is a book author. Name is the reconciliation key.
type Author struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,notblank"`
}

// IsPersisted reports whether the store has assigned an id.
func (a Author) IsPersisted() bool {
	return a.ID > 0
}

// Genre is a book genre. Name is the reconciliation key.
type Genre struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,notblank"`
}

// IsPersisted reports whether the store has assigned an id.
func (g Genre) IsPersisted() bool {
	return g.ID > 0
}

// Book is a catalog entry referencing one author and one genre.
type Book struct {
	ID          int    `json:"id" validate:"gte=0"`
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description"`
	Author      Author `json:"author"`
	Genre       Genre  `json:"genre"`
}

// IsPersisted reports whether the store has assigned an id.
func (b Book) IsPersisted() bool {
	return b.ID > 0
}

// RefKind names a foreign reference held by a book.
type RefKind string

const (
	RefAuthor RefKind = "author"
	RefGenre  RefKind = "genre"
)

// Column returns the books table column holding the reference.
func (r RefKind) Column() string {
	return string(r) + "_id"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Validate checks a book before it reaches the store.
func (b Book) Validate() error {
	return wrapValidation(validatorInstance().Struct(b))
}

// Validate checks an author before it reaches the store.
func (a Author) Validate() error {
	return wrapValidation(validatorInstance().Struct(a))
}

// Validate checks a genre before it reaches the store.
func (g Genre) Validate() error {
	return wrapValidation(validatorInstance().Struct(g))
}

// ValidateID rejects negative ids.
func ValidateID(id int) error {
	return wrapValidation(validatorInstance().Var(id, "gte=0"))
}
