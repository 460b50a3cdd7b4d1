package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"

	sq "github.com/Masterminds/squirrel"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Both supported drivers use '?' placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Store is a database/sql catalog store.
type Store struct {
	db      *sql.DB
	dialect string
	authors *namedStore[models.Author]
	genres  *namedStore[models.Genre]
	books   *bookStore
}

// New wraps db. dialect is "sqlite" or "mysql" and only affects Bootstrap.
func New(db *sql.DB, dialect string) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		authors: &namedStore[models.Author]{
			db: db, table: "authors", kind: "author",
			build: func(id int, name string) models.Author { return models.Author{ID: id, Name: name} },
			id:    func(a models.Author) int { return a.ID },
			name:  func(a models.Author) string { return a.Name },
		},
		genres: &namedStore[models.Genre]{
			db: db, table: "genres", kind: "genre",
			build: func(id int, name string) models.Genre { return models.Genre{ID: id, Name: name} },
			id:    func(g models.Genre) int { return g.ID },
			name:  func(g models.Genre) string { return g.Name },
		},
		books: &bookStore{db: db},
	}
}

func (s *Store) Authors() store.AuthorStore { return s.authors }
func (s *Store) Genres() store.GenreStore   { return s.genres }
func (s *Store) Books() store.BookStore     { return s.books }

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func exec(ctx context.Context, q querier, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return q.ExecContext(ctx, query, args...)
}

func count(ctx context.Context, q querier, table string, pred sq.Sqlizer) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(table).Where(pred).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func wrap(op string, err error) error {
	if err == nil || errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrStorage) {
		return err
	}
	return models.NewStoreError(op, err)
}

type namedStore[T any] struct {
	db    *sql.DB
	table string
	kind  string
	build func(id int, name string) T
	id    func(T) int
	name  func(T) string
}

func (n *namedStore[T]) query(ctx context.Context, b sq.SelectBuilder) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := n.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out = append(out, n.build(id, name))
	}
	return out, rows.Err()
}

func (n *namedStore[T]) selectAll() sq.SelectBuilder {
	return psql.Select("id", "name").From(n.table).OrderBy("id")
}

func (n *namedStore[T]) Add(ctx context.Context, entity T) (T, error) {
	var zero T
	res, err := exec(ctx, n.db, psql.Insert(n.table).Columns("name").Values(n.name(entity)))
	if err != nil {
		return zero, models.NewStoreError("add "+n.kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return zero, models.NewStoreError("add "+n.kind, err)
	}
	return n.build(int(id), n.name(entity)), nil
}

func (n *namedStore[T]) FindByID(ctx context.Context, id int) (T, error) {
	var zero T
	found, err := n.query(ctx, n.selectAll().Where(sq.Eq{"id": id}))
	if err != nil {
		return zero, models.NewStoreError("find "+n.kind, err)
	}
	if len(found) == 0 {
		return zero, models.NotFoundError(n.kind, id)
	}
	return found[0], nil
}

func (n *namedStore[T]) ExistsByID(ctx context.Context, id int) (bool, error) {
	c, err := count(ctx, n.db, n.table, sq.Eq{"id": id})
	if err != nil {
		return false, models.NewStoreError("exists "+n.kind, err)
	}
	return c > 0, nil
}

func (n *namedStore[T]) ReadAll(ctx context.Context) ([]T, error) {
	all, err := n.query(ctx, n.selectAll())
	if err != nil {
		return nil, models.NewStoreError("list "+n.kind, err)
	}
	return all, nil
}

// FindByName re-checks the name in Go since MySQL collations ignore case.
func (n *namedStore[T]) FindByName(ctx context.Context, name string) (T, error) {
	var zero T
	found, err := n.query(ctx, n.selectAll().Where(sq.Eq{"name": name}))
	if err != nil {
		return zero, models.NewStoreError("find "+n.kind, err)
	}
	for _, e := range found {
		if n.name(e) == name {
			return e, nil
		}
	}
	return zero, models.NotFoundError(n.kind, name)
}

func (n *namedStore[T]) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := n.FindByName(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, models.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (n *namedStore[T]) Edit(ctx context.Context, entity T) error {
	id := n.id(entity)
	err := withTx(ctx, n.db, func(tx *sql.Tx) error {
		c, err := count(ctx, tx, n.table, sq.Eq{"id": id})
		if err != nil {
			return err
		}
		if c == 0 {
			return models.NotFoundError(n.kind, id)
		}
		_, err = exec(ctx, tx, psql.Update(n.table).Set("name", n.name(entity)).Where(sq.Eq{"id": id}))
		return err
	})
	return wrap("edit "+n.kind, err)
}

func (n *namedStore[T]) Delete(ctx context.Context, id int) error {
	res, err := exec(ctx, n.db, psql.Delete(n.table).Where(sq.Eq{"id": id}))
	if err != nil {
		return models.NewStoreError("delete "+n.kind, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.NewStoreError("delete "+n.kind, err)
	}
	if affected == 0 {
		return models.NotFoundError(n.kind, id)
	}
	return nil
}

func (n *namedStore[T]) DeleteAll(ctx context.Context) error {
	_, err := exec(ctx, n.db, psql.Delete(n.table))
	return models.NewStoreError("clear "+n.kind, err)
}

type bookStore struct {
	db *sql.DB
}

func (b *bookStore) selectJoined() sq.SelectBuilder {
	return psql.Select(
		"b.id", "b.title", "b.description",
		"a.id", "a.name", "g.id", "g.name",
	).
		From("books b").
		LeftJoin("authors a ON a.id = b.author_id").
		LeftJoin("genres g ON g.id = b.genre_id").
		OrderBy("b.id")
}

func (b *bookStore) query(ctx context.Context, sb sq.SelectBuilder) ([]models.Book, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Book{}
	for rows.Next() {
		var (
			book               models.Book
			desc, aName, gName sql.NullString
			aID, gID           sql.NullInt64
		)
		if err := rows.Scan(&book.ID, &book.Title, &desc, &aID, &aName, &gID, &gName); err != nil {
			return nil, err
		}
		book.Description = desc.String
		book.Author = models.Author{ID: int(aID.Int64), Name: aName.String}
		book.Genre = models.Genre{ID: int(gID.Int64), Name: gName.String}
		out = append(out, book)
	}
	return out, rows.Err()
}

func checkRefs(ctx context.Context, q querier, op string, book models.Book) error {
	c, err := count(ctx, q, "authors", sq.Eq{"id": book.Author.ID})
	if err != nil {
		return err
	}
	if c == 0 {
		return models.MissingRefError(op, models.RefAuthor, book.Author.ID)
	}
	c, err = count(ctx, q, "genres", sq.Eq{"id": book.Genre.ID})
	if err != nil {
		return err
	}
	if c == 0 {
		return models.MissingRefError(op, models.RefGenre, book.Genre.ID)
	}
	return nil
}

func (b *bookStore) Add(ctx context.Context, book models.Book) (models.Book, error) {
	var id int64
	err := withTx(ctx, b.db, func(tx *sql.Tx) error {
		if err := checkRefs(ctx, tx, "add book", book); err != nil {
			return err
		}
		res, err := exec(ctx, tx, psql.Insert("books").
			Columns("title", "author_id", "description", "genre_id").
			Values(book.Title, book.Author.ID, book.Description, book.Genre.ID))
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return book, wrap("add book", err)
	}
	book.ID = int(id)
	return book, nil
}

func (b *bookStore) FindByID(ctx context.Context, id int) (models.Book, error) {
	found, err := b.query(ctx, b.selectJoined().Where(sq.Eq{"b.id": id}))
	if err != nil {
		return models.Book{}, models.NewStoreError("find book", err)
	}
	if len(found) == 0 {
		return models.Book{}, models.NotFoundError("book", id)
	}
	return found[0], nil
}

func (b *bookStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	c, err := count(ctx, b.db, "books", sq.Eq{"id": id})
	if err != nil {
		return false, models.NewStoreError("exists book", err)
	}
	return c > 0, nil
}

func (b *bookStore) ReadAll(ctx context.Context) ([]models.Book, error) {
	all, err := b.query(ctx, b.selectJoined())
	if err != nil {
		return nil, models.NewStoreError("list books", err)
	}
	return all, nil
}

func (b *bookStore) SearchByTitle(ctx context.Context, fragment string) ([]models.Book, error) {
	like := sq.Expr("LOWER(b.title) LIKE ? ESCAPE '"+utils.LikeEscape+"'", utils.ContainsPattern(fragment))
	found, err := b.query(ctx, b.selectJoined().Where(like))
	if err != nil {
		return nil, models.NewStoreError("search books", err)
	}
	return found, nil
}

func (b *bookStore) Edit(ctx context.Context, book models.Book) error {
	err := withTx(ctx, b.db, func(tx *sql.Tx) error {
		c, err := count(ctx, tx, "books", sq.Eq{"id": book.ID})
		if err != nil {
			return err
		}
		if c == 0 {
			return models.NotFoundError("book", book.ID)
		}
		if err := checkRefs(ctx, tx, "edit book", book); err != nil {
			return err
		}
		_, err = exec(ctx, tx, psql.Update("books").SetMap(map[string]any{
			"title":       book.Title,
			"author_id":   book.Author.ID,
			"description": book.Description,
			"genre_id":    book.Genre.ID,
		}).Where(sq.Eq{"id": book.ID}))
		return err
	})
	return wrap("edit book", err)
}

func (b *bookStore) Delete(ctx context.Context, id int) error {
	res, err := exec(ctx, b.db, psql.Delete("books").Where(sq.Eq{"id": id}))
	if err != nil {
		return models.NewStoreError("delete book", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.NewStoreError("delete book", err)
	}
	if affected == 0 {
		return models.NotFoundError("book", id)
	}
	return nil
}

func (b *bookStore) DeleteAll(ctx context.Context) error {
	_, err := exec(ctx, b.db, psql.Delete("books"))
	return models.NewStoreError("clear books", err)
}

func refColumn(ref models.RefKind) (string, error) {
	switch ref {
	case models.RefAuthor, models.RefGenre:
		return ref.Column(), nil
	default:
		return "", fmt.Errorf("%w: unknown reference %q", models.ErrValidation, ref)
	}
}

func (b *bookStore) CountReferences(ctx context.Context, ref models.RefKind, id int) (int, error) {
	col, err := refColumn(ref)
	if err != nil {
		return 0, err
	}
	c, err := count(ctx, b.db, "books", sq.Eq{col: id})
	if err != nil {
		return 0, models.NewStoreError("count books", err)
	}
	return c, nil
}

func (b *bookStore) DeleteReferencing(ctx context.Context, ref models.RefKind, id int) (int, error) {
	col, err := refColumn(ref)
	if err != nil {
		return 0, err
	}
	res, err := exec(ctx, b.db, psql.Delete("books").Where(sq.Eq{col: id}))
	if err != nil {
		return 0, models.NewStoreError("delete books", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, models.NewStoreError("delete books", err)
	}
	return int(affected), nil
}
