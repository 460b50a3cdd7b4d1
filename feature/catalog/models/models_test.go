package models_test

import (
	"errors"
	"fmt"
	"testing"

	"catalog-manager/feature/catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestBook_Validate(t *testing.T) {
	valid := models.Book{
		Title:  "Dune",
		Author: models.Author{Name: "Herbert"},
		Genre:  models.Genre{Name: "SciFi"},
	}

	tests := []struct {
		name    string
		mutate  func(b *models.Book)
		wantErr bool
	}{
		{"Valid", func(b *models.Book) {}, false},
		{"EmptyDescriptionAllowed", func(b *models.Book) { b.Description = "" }, false},
		{"EmptyTitle", func(b *models.Book) { b.Title = "" }, true},
		{"BlankTitle", func(b *models.Book) { b.Title = "   " }, true},
		{"NegativeID", func(b *models.Book) { b.ID = -1 }, true},
		{"EmptyAuthorName", func(b *models.Book) { b.Author.Name = "" }, true},
		{"EmptyGenreName", func(b *models.Book) { b.Genre.Name = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				assert.Equal(t, models.KindValidation, models.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, models.ValidateID(0))
	assert.NoError(t, models.ValidateID(42))
	assert.ErrorIs(t, models.ValidateID(-3), models.ErrValidation)
}

func TestKindOf(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name string
		err  error
		want models.ErrorKind
	}{
		{"Nil", nil, models.KindUnknown},
		{"Plain", cause, models.KindUnknown},
		{"NotFound", models.NotFoundError("book", 999), models.KindNotFound},
		{"Store", models.NewStoreError("add book", cause), models.KindStorage},
		{"InUse", fmt.Errorf("delete author 1: %w", models.ErrInUse), models.KindStorage},
		{"Persistence", fmt.Errorf("add book: %w", models.ErrPersistenceFailed), models.KindPersistenceFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.KindOf(tt.err))
		})
	}
}

func TestStoreError_UnwrapsCause(t *testing.T) {
	cause := errors.New("constraint violation")
	err := models.NewStoreError("add author", cause)

	assert.ErrorIs(t, err, models.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "add author: constraint violation", err.Error())
	assert.Nil(t, models.NewStoreError("noop", nil))
}

func TestRefKind_Column(t *testing.T) {
	assert.Equal(t, "author_id", models.RefAuthor.Column())
	assert.Equal(t, "genre_id", models.RefGenre.Column())
}
