package catalog

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog/models"

	"go.uber.org/zap"
)

// DefaultSeedCount is the number of sample books Populate adds by default.
const DefaultSeedCount = 5

// Seeder resets and fills the catalog with sample data.
type Seeder struct {
	svc *Service
}

// NewSeeder creates a seeder writing through svc.
func NewSeeder(svc *Service) *Seeder {
	return &Seeder{svc: svc}
}

// Reset deletes books, then genres, then authors.
func (sd *Seeder) Reset(ctx context.Context) error {
	defer sd.svc.invalidate()
	l := sd.svc.op("reset")

	st := sd.svc.store
	if err := st.Books().DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear books: %w", err)
	}
	if err := st.Genres().DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}
	if err := st.Authors().DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear authors: %w", err)
	}
	l.Info("Catalog cleared")
	return nil
}

// Populate adds count sample books "Book N" by "Author N" in "Genre N".
func (sd *Seeder) Populate(ctx context.Context, count int) error {
	l := sd.svc.op("populate")
	for i := 1; i <= count; i++ {
		_, err := sd.svc.AddBook(ctx, models.Book{
			Title:       fmt.Sprintf("Book %d", i),
			Description: fmt.Sprintf("Description %d", i),
			Author:      models.Author{Name: fmt.Sprintf("Author %d", i)},
			Genre:       models.Genre{Name: fmt.Sprintf("Genre %d", i)},
		})
		if err != nil {
			return fmt.Errorf("seed book %d: %w", i, err)
		}
	}
	l.Info("Catalog populated", zap.Int("books", count))
	return nil
}
