package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"sync"

	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"
)

// File names inside the blob.
const (
	AuthorsFile = "authors.csv"
	GenresFile  = "genres.csv"
	BooksFile   = "books.csv"
)

var (
	namedHeader = []string{"id", "name"}
	bookHeader  = []string{"id", "title", "author_id", "description", "genre_id"}
)

// Store is a CSV-backed catalog store. Calls are serialised by a mutex.
type Store struct {
	mu      sync.Mutex
	blob    Blob
	authors *namedTable[models.Author]
	genres  *namedTable[models.Genre]
	books   *bookTable
}

// New creates a store over blob. Missing files read as empty tables.
func New(blob Blob) *Store {
	s := &Store{blob: blob}
	s.authors = &namedTable[models.Author]{
		s: s, file: AuthorsFile, kind: "author",
		build: func(id int, name string) models.Author { return models.Author{ID: id, Name: name} },
		id:    func(a models.Author) int { return a.ID },
		name:  func(a models.Author) string { return a.Name },
	}
	s.genres = &namedTable[models.Genre]{
		s: s, file: GenresFile, kind: "genre",
		build: func(id int, name string) models.Genre { return models.Genre{ID: id, Name: name} },
		id:    func(g models.Genre) int { return g.ID },
		name:  func(g models.Genre) string { return g.Name },
	}
	s.books = &bookTable{s: s}
	return s
}

func (s *Store) Authors() store.AuthorStore { return s.authors }
func (s *Store) Genres() store.GenreStore   { return s.genres }
func (s *Store) Books() store.BookStore     { return s.books }

// Close is a no-op; every write is flushed immediately.
func (s *Store) Close() error { return nil }

func (s *Store) readRows(ctx context.Context, file string, width int) ([][]string, error) {
	data, err := s.blob.Read(ctx, file)
	if err != nil {
		return nil, models.NewStoreError("read "+file, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = width
	rows, err := r.ReadAll()
	if err != nil {
		return nil, models.NewStoreError("parse "+file, err)
	}
	// Header row.
	return rows[1:], nil
}

func (s *Store) writeRows(ctx context.Context, file string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return models.NewStoreError("encode "+file, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return models.NewStoreError("encode "+file, err)
	}
	return models.NewStoreError("write "+file, s.blob.Write(ctx, file, buf.Bytes()))
}

func parseID(file, val string) (int, error) {
	id, err := utils.ParseID(val)
	if err != nil {
		return 0, models.NewStoreError("parse "+file, err)
	}
	return id, nil
}

type namedTable[T any] struct {
	s     *Store
	file  string
	kind  string
	build func(id int, name string) T
	id    func(T) int
	name  func(T) string
}

func (n *namedTable[T]) load(ctx context.Context) ([]T, error) {
	rows, err := n.s.readRows(ctx, n.file, len(namedHeader))
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		id, err := parseID(n.file, row[0])
		if err != nil {
			return nil, err
		}
		out = append(out, n.build(id, row[1]))
	}
	sort.Slice(out, func(i, j int) bool { return n.id(out[i]) < n.id(out[j]) })
	return out, nil
}

func (n *namedTable[T]) save(ctx context.Context, all []T) error {
	rows := make([][]string, 0, len(all))
	for _, e := range all {
		rows = append(rows, []string{strconv.Itoa(n.id(e)), n.name(e)})
	}
	return n.s.writeRows(ctx, n.file, namedHeader, rows)
}

func (n *namedTable[T]) indexOf(all []T, id int) int {
	for i, e := range all {
		if n.id(e) == id {
			return i
		}
	}
	return -1
}

func (n *namedTable[T]) Add(ctx context.Context, entity T) (T, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	all, err := n.load(ctx)
	if err != nil {
		return entity, err
	}
	next := 1
	if len(all) > 0 {
		next = n.id(all[len(all)-1]) + 1
	}
	entity = n.build(next, n.name(entity))
	if err := n.save(ctx, append(all, entity)); err != nil {
		var zero T
		return zero, err
	}
	return entity, nil
}

func (n *namedTable[T]) FindByID(ctx context.Context, id int) (T, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	var zero T
	all, err := n.load(ctx)
	if err != nil {
		return zero, err
	}
	if i := n.indexOf(all, id); i >= 0 {
		return all[i], nil
	}
	return zero, models.NotFoundError(n.kind, id)
}

func (n *namedTable[T]) ExistsByID(ctx context.Context, id int) (bool, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	all, err := n.load(ctx)
	if err != nil {
		return false, err
	}
	return n.indexOf(all, id) >= 0, nil
}

func (n *namedTable[T]) ReadAll(ctx context.Context) ([]T, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	return n.load(ctx)
}

func (n *namedTable[T]) FindByName(ctx context.Context, name string) (T, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	var zero T
	all, err := n.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, e := range all {
		if n.name(e) == name {
			return e, nil
		}
	}
	return zero, models.NotFoundError(n.kind, name)
}

func (n *namedTable[T]) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := n.FindByName(ctx, name)
	if err == nil {
		return true, nil
	}
	if models.KindOf(err) == models.KindNotFound {
		return false, nil
	}
	return false, err
}

func (n *namedTable[T]) Edit(ctx context.Context, entity T) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	all, err := n.load(ctx)
	if err != nil {
		return err
	}
	i := n.indexOf(all, n.id(entity))
	if i < 0 {
		return models.NotFoundError(n.kind, n.id(entity))
	}
	all[i] = entity
	return n.save(ctx, all)
}

func (n *namedTable[T]) Delete(ctx context.Context, id int) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	all, err := n.load(ctx)
	if err != nil {
		return err
	}
	i := n.indexOf(all, id)
	if i < 0 {
		return models.NotFoundError(n.kind, id)
	}
	return n.save(ctx, append(all[:i], all[i+1:]...))
}

func (n *namedTable[T]) DeleteAll(ctx context.Context) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	return n.save(ctx, nil)
}

type bookRow struct {
	id          int
	title       string
	authorID    int
	description string
	genreID     int
}

func (r bookRow) ref(kind models.RefKind) int {
	if kind == models.RefGenre {
		return r.genreID
	}
	return r.authorID
}

type bookTable struct {
	s *Store
}

func (b *bookTable) load(ctx context.Context) ([]bookRow, error) {
	rows, err := b.s.readRows(ctx, BooksFile, len(bookHeader))
	if err != nil {
		return nil, err
	}
	out := make([]bookRow, 0, len(rows))
	for _, row := range rows {
		var (
			r   = bookRow{title: row[1], description: row[3]}
			err error
		)
		if r.id, err = parseID(BooksFile, row[0]); err != nil {
			return nil, err
		}
		if r.authorID, err = parseID(BooksFile, row[2]); err != nil {
			return nil, err
		}
		if r.genreID, err = parseID(BooksFile, row[4]); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out, nil
}

func (b *bookTable) save(ctx context.Context, all []bookRow) error {
	rows := make([][]string, 0, len(all))
	for _, r := range all {
		rows = append(rows, []string{
			strconv.Itoa(r.id), r.title, strconv.Itoa(r.authorID), r.description, strconv.Itoa(r.genreID),
		})
	}
	return b.s.writeRows(ctx, BooksFile, bookHeader, rows)
}

// refs loads authors and genres keyed by id for joining.
func (b *bookTable) refs(ctx context.Context) (map[int]models.Author, map[int]models.Genre, error) {
	authors, err := b.s.authors.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	genres, err := b.s.genres.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	am := make(map[int]models.Author, len(authors))
	for _, a := range authors {
		am[a.ID] = a
	}
	gm := make(map[int]models.Genre, len(genres))
	for _, g := range genres {
		gm[g.ID] = g
	}
	return am, gm, nil
}

func (b *bookTable) join(ctx context.Context, rows []bookRow) ([]models.Book, error) {
	authors, genres, err := b.refs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Book, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Book{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Author:      authors[r.authorID],
			Genre:       genres[r.genreID],
		})
	}
	return out, nil
}

func (b *bookTable) checkRefs(ctx context.Context, op string, book models.Book) error {
	authors, genres, err := b.refs(ctx)
	if err != nil {
		return err
	}
	if _, ok := authors[book.Author.ID]; !ok {
		return models.MissingRefError(op, models.RefAuthor, book.Author.ID)
	}
	if _, ok := genres[book.Genre.ID]; !ok {
		return models.MissingRefError(op, models.RefGenre, book.Genre.ID)
	}
	return nil
}

func toRow(id int, book models.Book) bookRow {
	return bookRow{
		id:          id,
		title:       book.Title,
		authorID:    book.Author.ID,
		description: book.Description,
		genreID:     book.Genre.ID,
	}
}

func (b *bookTable) Add(ctx context.Context, book models.Book) (models.Book, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if err := b.checkRefs(ctx, "add book", book); err != nil {
		return book, err
	}
	all, err := b.load(ctx)
	if err != nil {
		return book, err
	}
	next := 1
	if len(all) > 0 {
		next = all[len(all)-1].id + 1
	}
	if err := b.save(ctx, append(all, toRow(next, book))); err != nil {
		return book, err
	}
	book.ID = next
	return book, nil
}

func (b *bookTable) find(ctx context.Context, id int) (bookRow, bool, error) {
	all, err := b.load(ctx)
	if err != nil {
		return bookRow{}, false, err
	}
	for _, r := range all {
		if r.id == id {
			return r, true, nil
		}
	}
	return bookRow{}, false, nil
}

func (b *bookTable) FindByID(ctx context.Context, id int) (models.Book, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	r, ok, err := b.find(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if !ok {
		return models.Book{}, models.NotFoundError("book", id)
	}
	books, err := b.join(ctx, []bookRow{r})
	if err != nil {
		return models.Book{}, err
	}
	return books[0], nil
}

func (b *bookTable) ExistsByID(ctx context.Context, id int) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	_, ok, err := b.find(ctx, id)
	return ok, err
}

func (b *bookTable) ReadAll(ctx context.Context) ([]models.Book, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	all, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return b.join(ctx, all)
}

func (b *bookTable) SearchByTitle(ctx context.Context, fragment string) ([]models.Book, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	all, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]bookRow, 0, len(all))
	for _, r := range all {
		if utils.ContainsFold(r.title, fragment) {
			matched = append(matched, r)
		}
	}
	return b.join(ctx, matched)
}

func (b *bookTable) Edit(ctx context.Context, book models.Book) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	all, err := b.load(ctx)
	if err != nil {
		return err
	}
	i := -1
	for j, r := range all {
		if r.id == book.ID {
			i = j
			break
		}
	}
	if i < 0 {
		return models.NotFoundError("book", book.ID)
	}
	if err := b.checkRefs(ctx, "edit book", book); err != nil {
		return err
	}
	all[i] = toRow(book.ID, book)
	return b.save(ctx, all)
}

func (b *bookTable) Delete(ctx context.Context, id int) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	all, err := b.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]bookRow, 0, len(all))
	for _, r := range all {
		if r.id != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(all) {
		return models.NotFoundError("book", id)
	}
	return b.save(ctx, kept)
}

func (b *bookTable) DeleteAll(ctx context.Context) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return b.save(ctx, nil)
}

func (b *bookTable) CountReferences(ctx context.Context, ref models.RefKind, id int) (int, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	all, err := b.load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range all {
		if r.ref(ref) == id {
			n++
		}
	}
	return n, nil
}

func (b *bookTable) DeleteReferencing(ctx context.Context, ref models.RefKind, id int) (int, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	all, err := b.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]bookRow, 0, len(all))
	for _, r := range all {
		if r.ref(ref) != id {
			kept = append(kept, r)
		}
	}
	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := b.save(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

var _ store.Store = (*Store)(nil)
