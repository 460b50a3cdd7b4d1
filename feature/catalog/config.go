package catalog

// Config tunes the catalog service.
type Config struct {
	// CascadeDelete removes an author's or genre's books along with it.
	// When false, deleting a referenced author or genre fails with models.ErrInUse.
	CascadeDelete bool `mapstructure:"cascade_delete" default:"true"`
	// SearchCacheSize bounds the memoized title searches. Zero disables the cache.
	SearchCacheSize int `mapstructure:"search_cache_size" default:"64"`
}
