package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMessages(t *testing.T) {
	msgs, err := LoadMessages()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "ru"}, msgs.Locales())
	assert.True(t, msgs.Has("ru"))
	assert.False(t, msgs.Has("de"))
}

func TestMessages_Get(t *testing.T) {
	msgs, err := LoadMessages()
	require.NoError(t, err)

	tests := []struct {
		name   string
		locale string
		key    string
		args   []any
		want   string
	}{
		{"English", "en", "menu.exitMessage", nil, "Goodbye!"},
		{"Russian", "ru", "menu.exitMessage", nil, "До свидания!"},
		{"Formatted", "en", "service.addBook", []any{"Dune", 3}, `Book "Dune" added with id 3.`},
		{"FallsBackToEnglish", "ru", "service.inUse", nil, msgs.Get("en", "service.inUse")},
		{"UnknownLocale", "de", "menu.exitMessage", nil, "Goodbye!"},
		{"MissingKey", "en", "menu.nope", nil, "menu.nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, msgs.Get(tt.locale, tt.key, tt.args...))
		})
	}
}

func TestFlatten(t *testing.T) {
	out := map[string]string{}
	flatten("", map[string]any{
		"a": map[string]any{"b": "x", "c": map[string]any{"d": 1}},
		"e": true,
	}, out)
	assert.Equal(t, map[string]string{"a.b": "x", "a.c.d": "1", "e": "true"}, out)
}

func TestKeep(t *testing.T) {
	assert.Equal(t, "old", keep("", "old"))
	assert.Equal(t, "new", keep("new", "old"))
}
