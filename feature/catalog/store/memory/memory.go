package memory

import (
	"context"
	"sort"
	"sync"

	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"

	"github.com/samber/lo"
)

type bookRecord struct {
	id          int
	title       string
	description string
	authorID    int
	genreID     int
}

type state struct {
	mu      sync.RWMutex
	authors map[int]models.Author
	genres  map[int]models.Genre
	books   map[int]bookRecord
	nextIDs map[string]int
}

func (s *state) nextID(table string) int {
	s.nextIDs[table]++
	return s.nextIDs[table]
}

// Store is an in-memory catalog store safe for concurrent use.
type Store struct {
	authors *namedStore[models.Author]
	genres  *namedStore[models.Genre]
	books   *bookStore
}

// New creates an empty in-memory store.
func New() *Store {
	st := &state{
		authors: map[int]models.Author{},
		genres:  map[int]models.Genre{},
		books:   map[int]bookRecord{},
		nextIDs: map[string]int{},
	}
	return &Store{
		authors: &namedStore[models.Author]{
			st: st, table: "author",
			rows:  func() map[int]models.Author { return st.authors },
			id:    func(a models.Author) int { return a.ID },
			name:  func(a models.Author) string { return a.Name },
			setID: func(a models.Author, id int) models.Author { a.ID = id; return a },
		},
		genres: &namedStore[models.Genre]{
			st: st, table: "genre",
			rows:  func() map[int]models.Genre { return st.genres },
			id:    func(g models.Genre) int { return g.ID },
			name:  func(g models.Genre) string { return g.Name },
			setID: func(g models.Genre, id int) models.Genre { g.ID = id; return g },
		},
		books: &bookStore{st: st},
	}
}

func (s *Store) Authors() store.AuthorStore { return s.authors }
func (s *Store) Genres() store.GenreStore   { return s.genres }
func (s *Store) Books() store.BookStore     { return s.books }

// Close is a no-op.
func (s *Store) Close() error { return nil }

type namedStore[T any] struct {
	st    *state
	table string
	rows  func() map[int]T
	id    func(T) int
	name  func(T) string
	setID func(T, int) T
}

func (n *namedStore[T]) Add(_ context.Context, entity T) (T, error) {
	n.st.mu.Lock()
	defer n.st.mu.Unlock()
	entity = n.setID(entity, n.st.nextID(n.table))
	n.rows()[n.id(entity)] = entity
	return entity, nil
}

func (n *namedStore[T]) FindByID(_ context.Context, id int) (T, error) {
	n.st.mu.RLock()
	defer n.st.mu.RUnlock()
	e, ok := n.rows()[id]
	if !ok {
		return e, models.NotFoundError(n.table, id)
	}
	return e, nil
}

func (n *namedStore[T]) ExistsByID(_ context.Context, id int) (bool, error) {
	n.st.mu.RLock()
	defer n.st.mu.RUnlock()
	_, ok := n.rows()[id]
	return ok, nil
}

func (n *namedStore[T]) ReadAll(_ context.Context) ([]T, error) {
	n.st.mu.RLock()
	defer n.st.mu.RUnlock()
	return n.sorted(), nil
}

func (n *namedStore[T]) sorted() []T {
	all := lo.Values(n.rows())
	sort.Slice(all, func(i, j int) bool { return n.id(all[i]) < n.id(all[j]) })
	return all
}

func (n *namedStore[T]) FindByName(_ context.Context, name string) (T, error) {
	n.st.mu.RLock()
	defer n.st.mu.RUnlock()
	e, ok := lo.Find(n.sorted(), func(e T) bool { return n.name(e) == name })
	if !ok {
		return e, models.NotFoundError(n.table, name)
	}
	return e, nil
}

func (n *namedStore[T]) ExistsByName(_ context.Context, name string) (bool, error) {
	n.st.mu.RLock()
	defer n.st.mu.RUnlock()
	return lo.ContainsBy(lo.Values(n.rows()), func(e T) bool { return n.name(e) == name }), nil
}

func (n *namedStore[T]) Edit(_ context.Context, entity T) error {
	n.st.mu.Lock()
	defer n.st.mu.Unlock()
	id := n.id(entity)
	if _, ok := n.rows()[id]; !ok {
		return models.NotFoundError(n.table, id)
	}
	n.rows()[id] = entity
	return nil
}

func (n *namedStore[T]) Delete(_ context.Context, id int) error {
	n.st.mu.Lock()
	defer n.st.mu.Unlock()
	if _, ok := n.rows()[id]; !ok {
		return models.NotFoundError(n.table, id)
	}
	delete(n.rows(), id)
	return nil
}

func (n *namedStore[T]) DeleteAll(_ context.Context) error {
	n.st.mu.Lock()
	defer n.st.mu.Unlock()
	clear(n.rows())
	return nil
}

type bookStore struct {
	st *state
}

func (b *bookStore) toModel(r bookRecord) models.Book {
	return models.Book{
		ID:          r.id,
		Title:       r.title,
		Description: r.description,
		Author:      b.st.authors[r.authorID],
		Genre:       b.st.genres[r.genreID],
	}
}

func (b *bookStore) checkRefs(op string, book models.Book) error {
	if _, ok := b.st.authors[book.Author.ID]; !ok {
		return models.MissingRefError(op, models.RefAuthor, book.Author.ID)
	}
	if _, ok := b.st.genres[book.Genre.ID]; !ok {
		return models.MissingRefError(op, models.RefGenre, book.Genre.ID)
	}
	return nil
}

func (b *bookStore) collect(match func(bookRecord) bool) []models.Book {
	recs := lo.Filter(lo.Values(b.st.books), func(r bookRecord, _ int) bool { return match(r) })
	sort.Slice(recs, func(i, j int) bool { return recs[i].id < recs[j].id })
	return lo.Map(recs, func(r bookRecord, _ int) models.Book { return b.toModel(r) })
}

func (b *bookStore) Add(_ context.Context, book models.Book) (models.Book, error) {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	if err := b.checkRefs("add book", book); err != nil {
		return book, err
	}
	rec := bookRecord{
		id:          b.st.nextID("book"),
		title:       book.Title,
		description: book.Description,
		authorID:    book.Author.ID,
		genreID:     book.Genre.ID,
	}
	b.st.books[rec.id] = rec
	return b.toModel(rec), nil
}

func (b *bookStore) FindByID(_ context.Context, id int) (models.Book, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	rec, ok := b.st.books[id]
	if !ok {
		return models.Book{}, models.NotFoundError("book", id)
	}
	return b.toModel(rec), nil
}

func (b *bookStore) ExistsByID(_ context.Context, id int) (bool, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	_, ok := b.st.books[id]
	return ok, nil
}

func (b *bookStore) ReadAll(_ context.Context) ([]models.Book, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	return b.collect(func(bookRecord) bool { return true }), nil
}

func (b *bookStore) SearchByTitle(_ context.Context, fragment string) ([]models.Book, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	return b.collect(func(r bookRecord) bool { return utils.ContainsFold(r.title, fragment) }), nil
}

func (b *bookStore) Edit(_ context.Context, book models.Book) error {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	if _, ok := b.st.books[book.ID]; !ok {
		return models.NotFoundError("book", book.ID)
	}
	if err := b.checkRefs("edit book", book); err != nil {
		return err
	}
	b.st.books[book.ID] = bookRecord{
		id:          book.ID,
		title:       book.Title,
		description: book.Description,
		authorID:    book.Author.ID,
		genreID:     book.Genre.ID,
	}
	return nil
}

func (b *bookStore) Delete(_ context.Context, id int) error {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	if _, ok := b.st.books[id]; !ok {
		return models.NotFoundError("book", id)
	}
	delete(b.st.books, id)
	return nil
}

func (b *bookStore) DeleteAll(_ context.Context) error {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	clear(b.st.books)
	return nil
}

func refOf(ref models.RefKind, r bookRecord) int {
	if ref == models.RefGenre {
		return r.genreID
	}
	return r.authorID
}

func (b *bookStore) CountReferences(_ context.Context, ref models.RefKind, id int) (int, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	return lo.CountBy(lo.Values(b.st.books), func(r bookRecord) bool { return refOf(ref, r) == id }), nil
}

func (b *bookStore) DeleteReferencing(_ context.Context, ref models.RefKind, id int) (int, error) {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	ids := lo.FilterMap(lo.Values(b.st.books), func(r bookRecord, _ int) (int, bool) { return r.id, refOf(ref, r) == id })
	for _, bid := range ids {
		delete(b.st.books, bid)
	}
	return len(ids), nil
}
