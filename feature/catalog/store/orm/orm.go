package orm

import (
	"context"
	"errors"
	"fmt"

	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a GORM-backed catalog store.
type Store struct {
	db      *gorm.DB
	authors *namedStore[authorRow, models.Author]
	genres  *namedStore[genreRow, models.Genre]
	books   *bookStore
}

// New wraps db. With autoCreate set, missing tables are created.
func New(db *gorm.DB, autoCreate bool) (*Store, error) {
	if autoCreate {
		if err := db.AutoMigrate(&authorRow{}, &genreRow{}, &bookRow{}); err != nil {
			return nil, models.NewStoreError("create tables", err)
		}
	}

	return &Store{
		db: db,
		authors: &namedStore[authorRow, models.Author]{
			db: db, kind: "author",
			toModel: authorRow.toModel,
			newRow:  func(a models.Author) authorRow { return authorRow{Name: a.Name} },
			id:      func(a models.Author) int { return a.ID },
			name:    func(a models.Author) string { return a.Name },
		},
		genres: &namedStore[genreRow, models.Genre]{
			db: db, kind: "genre",
			toModel: genreRow.toModel,
			newRow:  func(g models.Genre) genreRow { return genreRow{Name: g.Name} },
			id:      func(g models.Genre) int { return g.ID },
			name:    func(g models.Genre) string { return g.Name },
		},
		books: &bookStore{db: db},
	}, nil
}

func (s *Store) Authors() store.AuthorStore { return s.authors }
func (s *Store) Genres() store.GenreStore   { return s.genres }
func (s *Store) Books() store.BookStore     { return s.books }

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB exposes the connection for schema inspection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// wrap passes through classified errors and marks the rest as storage failures.
func wrap(op string, err error) error {
	if err == nil || errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrStorage) {
		return err
	}
	return models.NewStoreError(op, err)
}

func exists(tx *gorm.DB, model any, id int) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

type namedStore[R any, T any] struct {
	db      *gorm.DB
	kind    string
	toModel func(R) T
	newRow  func(T) R // without id
	id      func(T) int
	name    func(T) string
}

func (n *namedStore[R, T]) Add(ctx context.Context, entity T) (T, error) {
	row := n.newRow(entity)
	if err := n.db.WithContext(ctx).Create(&row).Error; err != nil {
		var zero T
		return zero, models.NewStoreError("add "+n.kind, err)
	}
	return n.toModel(row), nil
}

func (n *namedStore[R, T]) FindByID(ctx context.Context, id int) (T, error) {
	var row R
	err := n.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero T
		return zero, models.NotFoundError(n.kind, id)
	}
	if err != nil {
		var zero T
		return zero, models.NewStoreError("find "+n.kind, err)
	}
	return n.toModel(row), nil
}

func (n *namedStore[R, T]) ExistsByID(ctx context.Context, id int) (bool, error) {
	ok, err := exists(n.db.WithContext(ctx), new(R), id)
	if err != nil {
		return false, models.NewStoreError("exists "+n.kind, err)
	}
	return ok, nil
}

func (n *namedStore[R, T]) ReadAll(ctx context.Context) ([]T, error) {
	var rows []R
	if err := n.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, models.NewStoreError("list "+n.kind, err)
	}
	return lo.Map(rows, func(r R, _ int) T { return n.toModel(r) }), nil
}

// FindByName matches exactly. MySQL's default collation compares case-insensitively,
// so candidates are filtered again here.
func (n *namedStore[R, T]) FindByName(ctx context.Context, name string) (T, error) {
	var rows []R
	if err := n.db.WithContext(ctx).Where("name = ?", name).Order("id").Find(&rows).Error; err != nil {
		var zero T
		return zero, models.NewStoreError("find "+n.kind, err)
	}
	match, ok := lo.Find(lo.Map(rows, func(r R, _ int) T { return n.toModel(r) }), func(e T) bool {
		return n.name(e) == name
	})
	if !ok {
		return match, models.NotFoundError(n.kind, name)
	}
	return match, nil
}

func (n *namedStore[R, T]) ExistsByName(ctx context.Context, name string) (bool, error) {
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

func (n *namedStore[R, T]) Edit(ctx context.Context, entity T) error {
	id := n.id(entity)
	err := n.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, new(R), id)
		if err != nil {
			return err
		}
		if !ok {
			return models.NotFoundError(n.kind, id)
		}
		return tx.Model(new(R)).Where("id = ?", id).Update("name", n.name(entity)).Error
	})
	return wrap("edit "+n.kind, err)
}

func (n *namedStore[R, T]) Delete(ctx context.Context, id int) error {
	res := n.db.WithContext(ctx).Delete(new(R), id)
	if res.Error != nil {
		return models.NewStoreError("delete "+n.kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NotFoundError(n.kind, id)
	}
	return nil
}

func (n *namedStore[R, T]) DeleteAll(ctx context.Context) error {
	err := n.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(R)).Error
	return models.NewStoreError("clear "+n.kind, err)
}

type bookStore struct {
	db *gorm.DB
}

func (b *bookStore) joined(ctx context.Context) *gorm.DB {
	return b.db.WithContext(ctx).Preload("Author").Preload("Genre")
}

func checkRefs(tx *gorm.DB, op string, book models.Book) error {
	ok, err := exists(tx, &authorRow{}, book.Author.ID)
	if err != nil {
		return err
	}
	if !ok {
		return models.MissingRefError(op, models.RefAuthor, book.Author.ID)
	}
	ok, err = exists(tx, &genreRow{}, book.Genre.ID)
	if err != nil {
		return err
	}
	if !ok {
		return models.MissingRefError(op, models.RefGenre, book.Genre.ID)
	}
	return nil
}

func (b *bookStore) Add(ctx context.Context, book models.Book) (models.Book, error) {
	row := newBookRow(book)
	row.ID = 0
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, "add book", book); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&row).Error
	})
	if err != nil {
		return book, wrap("add book", err)
	}
	book.ID = row.ID
	return book, nil
}

func (b *bookStore) FindByID(ctx context.Context, id int) (models.Book, error) {
	var row bookRow
	err := b.joined(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Book{}, models.NotFoundError("book", id)
	}
	if err != nil {
		return models.Book{}, models.NewStoreError("find book", err)
	}
	return row.toModel(), nil
}

func (b *bookStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	ok, err := exists(b.db.WithContext(ctx), &bookRow{}, id)
	if err != nil {
		return false, models.NewStoreError("exists book", err)
	}
	return ok, nil
}

func (b *bookStore) list(op string, q *gorm.DB) ([]models.Book, error) {
	var rows []bookRow
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, models.NewStoreError(op, err)
	}
	return lo.Map(rows, func(r bookRow, _ int) models.Book { return r.toModel() }), nil
}

func (b *bookStore) ReadAll(ctx context.Context) ([]models.Book, error) {
	return b.list("list books", b.joined(ctx))
}

func (b *bookStore) SearchByTitle(ctx context.Context, fragment string) ([]models.Book, error) {
	q := b.joined(ctx).Where("LOWER(title) LIKE ? ESCAPE '"+utils.LikeEscape+"'", utils.ContainsPattern(fragment))
	return b.list("search books", q)
}

func (b *bookStore) Edit(ctx context.Context, book models.Book) error {
	row := newBookRow(book)
	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &bookRow{}, book.ID)
		if err != nil {
			return err
		}
		if !ok {
			return models.NotFoundError("book", book.ID)
		}
		if err := checkRefs(tx, "edit book", book); err != nil {
			return err
		}
		return tx.Model(&bookRow{ID: book.ID}).Updates(map[string]any{
			"title":       row.Title,
			"author_id":   row.AuthorID,
			"description": row.Description,
			"genre_id":    row.GenreID,
		}).Error
	})
	return wrap("edit book", err)
}

func (b *bookStore) Delete(ctx context.Context, id int) error {
	res := b.db.WithContext(ctx).Delete(&bookRow{}, id)
	if res.Error != nil {
		return models.NewStoreError("delete book", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NotFoundError("book", id)
	}
	return nil
}

func (b *bookStore) DeleteAll(ctx context.Context) error {
	err := b.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&bookRow{}).Error
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
	var n int64
	if err := b.db.WithContext(ctx).Model(&bookRow{}).Where(col+" = ?", id).Count(&n).Error; err != nil {
		return 0, models.NewStoreError("count books", err)
	}
	return int(n), nil
}

func (b *bookStore) DeleteReferencing(ctx context.Context, ref models.RefKind, id int) (int, error) {
	col, err := refColumn(ref)
	if err != nil {
		return 0, err
	}
	res := b.db.WithContext(ctx).Where(col+" = ?", id).Delete(&bookRow{})
	if res.Error != nil {
		return 0, models.NewStoreError("delete books", res.Error)
	}
	return int(res.RowsAffected), nil
}
