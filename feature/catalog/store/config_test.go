package store_test

import (
	"testing"

	"catalog-manager/feature/catalog/store"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    bool
	}{
		{"ORM", store.BackendORM, true},
		{"SQL", store.BackendSQL, true},
		{"CSV", store.BackendCSV, true},
		{"Memory", store.BackendMemory, true},
		{"Invalid", "mongo", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := store.Config{Backend: tt.backend}
			assert.Equal(t, tt.want, c.IsValidBackend())
		})
	}
}
