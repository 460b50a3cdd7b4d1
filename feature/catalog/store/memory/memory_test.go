package memory_test

import (
	"context"
	"sync"
	"testing"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/catalog/store/memory"
	"catalog-manager/feature/catalog/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return memory.New() })
}

func TestStore_RenameVisibleThroughBooks(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	a, err := s.Authors().Add(ctx, models.Author{Name: "Herbert"})
	require.NoError(t, err)
	g, err := s.Genres().Add(ctx, models.Genre{Name: "SciFi"})
	require.NoError(t, err)
	b, err := s.Books().Add(ctx, models.Book{Title: "Dune", Author: a, Genre: g})
	require.NoError(t, err)

	a.Name = "Frank Herbert"
	require.NoError(t, s.Authors().Edit(ctx, a))

	found, err := s.Books().FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", found.Author.Name)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Authors().Add(ctx, models.Author{Name: "A"})
		}()
	}
	wg.Wait()

	all, err := s.Authors().ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
	assert.Equal(t, 50, all[49].ID)
}
