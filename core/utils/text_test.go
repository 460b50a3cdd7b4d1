package utils_test

import (
	"testing"

	"catalog-manager/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestContainsFold(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		substr string
		want   bool
	}{
		{"SameCase", "Dune Messiah", "Messiah", true},
		{"MixedCase", "Dune Messiah", "mEsSiAh", true},
		{"Cyrillic", "Война и мир", "ВОЙНА", true},
		{"Empty", "Dune", "", true},
		{"Missing", "Dune", "Foundation", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ContainsFold(tt.s, tt.substr))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "100!% pure", utils.EscapeLike("100% pure"))
	assert.Equal(t, "a!_b", utils.EscapeLike("a_b"))
	assert.Equal(t, "wow!!", utils.EscapeLike("wow!"))
	assert.Equal(t, "%dune!_%", utils.ContainsPattern("DUNE_"))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"Plain", "42", 42, false},
		{"Spaces", " 7 ", 7, false},
		{"Zero", "0", 0, false},
		{"Negative", "-1", 0, true},
		{"Text", "abc", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ParseID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", utils.ToString("abc"))
	assert.Equal(t, "abc", utils.ToString([]byte("abc")))
	assert.Equal(t, "12", utils.ToString(12))
	assert.Equal(t, "true", utils.ToString(true))
}
