package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store/memory"
	"catalog-manager/feature/console"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, cascade bool) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(memory.New(), catalog.Config{CascadeDelete: cascade, SearchCacheSize: 8}, nil)
	require.NoError(t, err)
	return svc
}

func seedBook(t *testing.T, svc *catalog.Service, title, author, genre string) models.Book {
	t.Helper()
	book, err := svc.AddBook(context.Background(), models.Book{
		Title:       title,
		Description: "about " + title,
		Author:      models.Author{Name: author},
		Genre:       models.Genre{Name: genre},
	})
	require.NoError(t, err)
	return book
}

func runMenu(t *testing.T, svc console.Service, locale, input string) string {
	t.Helper()
	var out bytes.Buffer
	m, err := console.NewMenu(svc, strings.NewReader(input), &out, console.Options{Locale: locale})
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	return out.String()
}

func TestMenu_LanguageSelection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Russian", "1\n0\n0\n", []string{"Выберите действие:", "До свидания!"}},
		{"English", "2\n0\n0\n", []string{"Choose an action:", "Goodbye!"}},
		{"ExitRightAway", "0\n", []string{"Choose a language:", "Goodbye!"}},
		{"InvalidThenExit", "7\nabc\n0\n", []string{"Invalid choice, try again.", "Please enter a number."}},
		{"ActionsReturnToLanguages", "2\n0\n1\n0\n0\n", []string{"Choose an action:", "Выберите действие:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runMenu(t, newService(t, true), "", tt.input)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestMenu_PresetLocaleSkipsLanguageMenu(t *testing.T) {
	out := runMenu(t, newService(t, true), "en", "0\n")
	assert.NotContains(t, out, "Choose a language:")
	assert.Contains(t, out, "Goodbye!")
}

func TestMenu_UnknownLocale(t *testing.T) {
	_, err := console.NewMenu(newService(t, true), strings.NewReader(""), &bytes.Buffer{}, console.Options{Locale: "de"})
	assert.Error(t, err)
}

func TestMenu_Actions(t *testing.T) {
	tests := []struct {
		name    string
		seed    bool
		cascade bool
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "ListEmpty",
			input: "1\n0\n",
			want:  []string{"Nothing to show."},
		},
		{
			name:  "ListBooks",
			seed:  true,
			input: "1\n0\n",
			want:  []string{"Dune", "Frank Herbert", "about Dune", "SciFi"},
		},
		{
			name:  "Create",
			input: "3\nEmma\nJane Austen\nA novel\nClassic\n1\n0\n",
			want:  []string{`Book "Emma" added with id 1.`, "Jane Austen", "Classic"},
		},
		{
			name:  "CreateBlankTitle",
			input: "3\n\nJane Austen\n\nClassic\n0\n",
			want:  []string{"Invalid input:"},
		},
		{
			name:    "FindIgnoresCase",
			seed:    true,
			input:   "2\ndu\n0\n",
			want:    []string{"Dune"},
			notWant: []string{"Nothing to show."},
		},
		{
			name:  "FindNothing",
			seed:  true,
			input: "2\nzzz\n0\n",
			want:  []string{"Nothing to show."},
		},
		{
			name:  "EditUnknownID",
			input: "4\n42\n0\n",
			want:  []string{"No book with that id."},
		},
		{
			name:  "IDReprompts",
			seed:  true,
			input: "5\n-1\nabc\n1\n0\n",
			want:  []string{"The id must not be negative.", "The id must be a number.", "Book 1 deleted."},
		},
		{
			name:  "DeleteUnknownBook",
			input: "5\n9\n0\n",
			want:  []string{"No book with that id."},
		},
		{
			name:    "DeleteAuthorCascades",
			seed:    true,
			cascade: true,
			input:   "6\n1\n1\n0\n",
			want:    []string{"Frank Herbert", "Author 1 deleted along with 1 book(s).", "Nothing to show."},
		},
		{
			name:  "DeleteAuthorInUse",
			seed:  true,
			input: "6\n1\n0\n",
			want:  []string{"It is still referenced by books and was not deleted."},
		},
		{
			name:  "InvalidAction",
			input: "8\nx\n0\n",
			want:  []string{"Invalid choice, try again.", "Please enter a number."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.cascade)
			if tt.seed {
				seedBook(t, svc, "Dune", "Frank Herbert", "SciFi")
			}
			out := runMenu(t, svc, "en", tt.input)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestMenu_EditKeepsBlankFields(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, true)
	seedBook(t, svc, "Dune", "Frank Herbert", "SciFi")

	out := runMenu(t, svc, "en", "4\n1\n\nBrian Herbert\n\n\n0\n")
	assert.Contains(t, out, `empty keeps "Dune"`)
	assert.Contains(t, out, "Book 1 updated.")

	book, err := svc.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "about Dune", book.Description)
	assert.Equal(t, "Brian Herbert", book.Author.Name)
	assert.Equal(t, "SciFi", book.Genre.Name)

	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 2)
}

func TestMenu_EOFEndsSession(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"MidPrompt", "3\nDune\n"},
		{"MidIDPrompt", "4\n-5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runMenu(t, newService(t, true), "en", tt.input)
			assert.NotContains(t, out, "Goodbye!")
		})
	}
}

func TestMenu_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := console.NewMenu(newService(t, true), strings.NewReader("1\n0\n"), &bytes.Buffer{}, console.Options{Locale: "en"})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
}
