package catalog

import (
	"slices"

	"catalog-manager/feature/catalog/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

// searchCache memoizes title searches keyed by the exact fragment.
// A nil cache is valid and stores nothing.
type searchCache struct {
	entries *lru.Cache[string, []models.Book]
}

func newSearchCache(size int) (*searchCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, []models.Book](size)
	if err != nil {
		return nil, err
	}
	return &searchCache{entries: entries}, nil
}

func (c *searchCache) get(fragment string) ([]models.Book, bool) {
	if c == nil {
		return nil, false
	}
	books, ok := c.entries.Get(fragment)
	if !ok {
		return nil, false
	}
	return slices.Clone(books), true
}

func (c *searchCache) put(fragment string, books []models.Book) {
	if c == nil {
		return
	}
	c.entries.Add(fragment, slices.Clone(books))
}

func (c *searchCache) purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}

func (c *searchCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
