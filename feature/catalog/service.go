package catalog

import (
	"context"
	"errors"
	"fmt"

	"catalog-manager/core/logger"
	"catalog-manager/core/reconcile"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"

	"go.uber.org/zap"
)

// Service orchestrates catalog operations over one store.
type Service struct {
	store      store.Store
	reconciler *Reconciler
	cache      *searchCache
	cfg        Config
	logger     *zap.Logger
}

// NewService creates a new catalog service.
func NewService(s store.Store, cfg Config, log *zap.Logger) (*Service, error) {
	cache, err := newSearchCache(cfg.SearchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:      s,
		reconciler: NewReconciler(s),
		cache:      cache,
		cfg:        cfg,
		logger:     log,
	}, nil
}

func (s *Service) op(name string) *zap.Logger {
	return logger.WithOperation(s.logger, name)
}

// invalidate drops every memoized search. Called after any write attempt.
func (s *Service) invalidate() {
	s.cache.purge()
}

// AddBook resolves the book's author and genre by name, then persists it.
func (s *Service) AddBook(ctx context.Context, book models.Book) (models.Book, error) {
	l := s.op("add_book")
	if err := book.Validate(); err != nil {
		return book, err
	}
	defer s.invalidate()

	outcome, err := s.reconciler.Reconcile(ctx, &book)
	if err != nil {
		l.Error("Reconciliation failed", zap.String("title", book.Title), zap.Error(err))
		return book, err
	}

	added, err := s.store.Books().Add(ctx, book)
	if err != nil {
		// Authors or genres created above stay in place.
		l.Error("Book insert failed",
			zap.String("title", book.Title),
			zap.Stringer("author_action", outcome.Author),
			zap.Stringer("genre_action", outcome.Genre),
			zap.Error(err))
		return book, fmt.Errorf("add book %q: %w", book.Title, err)
	}
	if !added.IsPersisted() {
		l.Error("Store assigned no id", zap.String("title", book.Title))
		return added, fmt.Errorf("add book %q: %w", book.Title, models.ErrPersistenceFailed)
	}

	l.Info("Book added",
		zap.Int("id", added.ID),
		zap.String("title", added.Title),
		zap.Int("author_id", added.Author.ID),
		zap.Stringer("author_action", outcome.Author),
		zap.Int("genre_id", added.Genre.ID),
		zap.Stringer("genre_action", outcome.Genre))
	return added, nil
}

// FindBooksByName returns books whose title contains fragment, ignoring case.
// Results are memoized until the next write.
func (s *Service) FindBooksByName(ctx context.Context, fragment string) ([]models.Book, error) {
	l := s.op("find_books")
	if books, ok := s.cache.get(fragment); ok {
		l.Debug("Search served from cache", zap.String("fragment", fragment), zap.Int("count", len(books)))
		return books, nil
	}

	books, err := s.store.Books().SearchByTitle(ctx, fragment)
	if err != nil {
		l.Error("Search failed", zap.String("fragment", fragment), zap.Error(err))
		return nil, err
	}
	s.cache.put(fragment, books)
	l.Debug("Search completed", zap.String("fragment", fragment), zap.Int("count", len(books)))
	return books, nil
}

// ListBooks returns every book ordered by id.
func (s *Service) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.store.Books().ReadAll(ctx)
	if err != nil {
		s.op("list_books").Error("List failed", zap.Error(err))
		return nil, err
	}
	return books, nil
}

// GetBook returns the book with the id.
func (s *Service) GetBook(ctx context.Context, id int) (models.Book, error) {
	if err := models.ValidateID(id); err != nil {
		return models.Book{}, err
	}
	return s.store.Books().FindByID(ctx, id)
}

// BookExists reports whether a book with the id exists.
func (s *Service) BookExists(ctx context.Context, id int) (bool, error) {
	if err := models.ValidateID(id); err != nil {
		return false, err
	}
	return s.store.Books().ExistsByID(ctx, id)
}

// EditBook replaces a stored book. A nil book is a no-op.
// Author and genre are resolved by name again, so unchanged names keep their ids.
func (s *Service) EditBook(ctx context.Context, book *models.Book) error {
	if book == nil {
		return nil
	}
	l := s.op("edit_book")
	if book.ID <= 0 {
		return fmt.Errorf("%w: book id must be set", models.ErrValidation)
	}
	if err := book.Validate(); err != nil {
		return err
	}

	exists, err := s.store.Books().ExistsByID(ctx, book.ID)
	if err != nil {
		l.Error("Existence check failed", zap.Int("id", book.ID), zap.Error(err))
		return err
	}
	if !exists {
		return models.NotFoundError("book", book.ID)
	}

	defer s.invalidate()
	edited := *book
	outcome, err := s.reconciler.Reconcile(ctx, &edited)
	if err != nil {
		l.Error("Reconciliation failed", zap.Int("id", book.ID), zap.Error(err))
		return err
	}
	if err := s.store.Books().Edit(ctx, edited); err != nil {
		l.Error("Book update failed", zap.Int("id", book.ID), zap.Error(err))
		return fmt.Errorf("edit book %d: %w", book.ID, err)
	}
	*book = edited

	l.Info("Book edited",
		zap.Int("id", book.ID),
		zap.String("title", book.Title),
		zap.Stringer("author_action", outcome.Author),
		zap.Stringer("genre_action", outcome.Genre))
	return nil
}

// DeleteBook removes the book with the id. Its author and genre stay.
func (s *Service) DeleteBook(ctx context.Context, id int) error {
	l := s.op("delete_book")
	if err := models.ValidateID(id); err != nil {
		return err
	}

	exists, err := s.store.Books().ExistsByID(ctx, id)
	if err != nil {
		l.Error("Existence check failed", zap.Int("id", id), zap.Error(err))
		return err
	}
	if !exists {
		return models.NotFoundError("book", id)
	}

	defer s.invalidate()
	if err := s.store.Books().Delete(ctx, id); err != nil {
		l.Error("Book delete failed", zap.Int("id", id), zap.Error(err))
		return err
	}
	l.Info("Book deleted", zap.Int("id", id))
	return nil
}

// named groups what the service needs to manage authors and genres alike.
type named[T any] struct {
	ref     models.RefKind
	store   store.NamedStore[T]
	adapter reconcile.Adapter[T]
	id      func(T) int
	name    func(T) string
}

func (s *Service) authors() named[models.Author] {
	return named[models.Author]{
		ref:     models.RefAuthor,
		store:   s.store.Authors(),
		adapter: s.reconciler.authors,
		id:      func(a models.Author) int { return a.ID },
		name:    func(a models.Author) string { return a.Name },
	}
}

func (s *Service) genres() named[models.Genre] {
	return named[models.Genre]{
		ref:     models.RefGenre,
		store:   s.store.Genres(),
		adapter: s.reconciler.genres,
		id:      func(g models.Genre) int { return g.ID },
		name:    func(g models.Genre) string { return g.Name },
	}
}

func addNamed[T any](ctx context.Context, s *Service, n named[T], name string) (T, error) {
	l := s.op("add_" + string(n.ref))
	res, err := reconcile.Resolve(ctx, n.adapter, name)
	if err != nil {
		l.Error("Add failed", zap.String("name", name), zap.Error(err))
		return res.Entity, err
	}
	l.Info("Resolved", zap.String("name", name), zap.Int("id", n.id(res.Entity)), zap.Stringer("action", res.Action))
	return res.Entity, nil
}

func editNamed[T any](ctx context.Context, s *Service, n named[T], entity T) error {
	l := s.op("edit_" + string(n.ref))
	id := n.id(entity)
	if id <= 0 {
		return fmt.Errorf("%w: %s id must be set", models.ErrValidation, n.ref)
	}

	if _, err := n.store.FindByID(ctx, id); err != nil {
		return err
	}

	owner, err := n.store.FindByName(ctx, n.name(entity))
	switch {
	case err == nil && n.id(owner) != id:
		return fmt.Errorf("%w: %s name %q already used by id %d", models.ErrValidation, n.ref, n.name(entity), n.id(owner))
	case err != nil && !errors.Is(err, models.ErrNotFound):
		return err
	}

	defer s.invalidate()
	if err := n.store.Edit(ctx, entity); err != nil {
		l.Error("Rename failed", zap.Int("id", id), zap.Error(err))
		return err
	}
	l.Info("Renamed", zap.Int("id", id), zap.String("name", n.name(entity)))
	return nil
}

// deleteNamed removes the entity and reports how many books went with it.
func deleteNamed[T any](ctx context.Context, s *Service, n named[T], id int) (int, error) {
	l := s.op("delete_" + string(n.ref))
	if err := models.ValidateID(id); err != nil {
		return 0, err
	}

	exists, err := n.store.ExistsByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, models.NotFoundError(string(n.ref), id)
	}

	refs, err := s.store.Books().CountReferences(ctx, n.ref, id)
	if err != nil {
		return 0, err
	}
	if refs > 0 && !s.cfg.CascadeDelete {
		return 0, fmt.Errorf("delete %s %d: %d books: %w", n.ref, id, refs, models.ErrInUse)
	}

	defer s.invalidate()
	removed := 0
	if refs > 0 {
		if removed, err = s.store.Books().DeleteReferencing(ctx, n.ref, id); err != nil {
			l.Error("Cascade failed", zap.Int("id", id), zap.Error(err))
			return 0, err
		}
	}
	if err := n.store.Delete(ctx, id); err != nil {
		l.Error("Delete failed", zap.Int("id", id), zap.Int("books_removed", removed), zap.Error(err))
		return removed, err
	}
	l.Info("Deleted", zap.Int("id", id), zap.Int("books_removed", removed))
	return removed, nil
}

// ListAuthors returns every author ordered by id.
func (s *Service) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.store.Authors().ReadAll(ctx)
}

// AddAuthor returns the author with the exact name, creating it when missing.
func (s *Service) AddAuthor(ctx context.Context, name string) (models.Author, error) {
	if err := (models.Author{Name: name}).Validate(); err != nil {
		return models.Author{}, err
	}
	return addNamed(ctx, s, s.authors(), name)
}

// EditAuthor renames an author. The name must not belong to another author.
func (s *Service) EditAuthor(ctx context.Context, author models.Author) error {
	if err := author.Validate(); err != nil {
		return err
	}
	return editNamed(ctx, s, s.authors(), author)
}

// DeleteAuthor removes an author. Its books are removed too when cascading,
// otherwise a referenced author fails with models.ErrInUse.
func (s *Service) DeleteAuthor(ctx context.Context, id int) (int, error) {
	return deleteNamed(ctx, s, s.authors(), id)
}

// ListGenres returns every genre ordered by id.
func (s *Service) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.store.Genres().ReadAll(ctx)
}

// AddGenre returns the genre with the exact name, creating it when missing.
func (s *Service) AddGenre(ctx context.Context, name string) (models.Genre, error) {
	if err := (models.Genre{Name: name}).Validate(); err != nil {
		return models.Genre{}, err
	}
	return addNamed(ctx, s, s.genres(), name)
}

// EditGenre renames a genre. The name must not belong to another genre.
func (s *Service) EditGenre(ctx context.Context, genre models.Genre) error {
	if err := genre.Validate(); err != nil {
		return err
	}
	return editNamed(ctx, s, s.genres(), genre)
}

// DeleteGenre removes a genre, following the same cascade rule as DeleteAuthor.
func (s *Service) DeleteGenre(ctx context.Context, id int) (int, error) {
	return deleteNamed(ctx, s, s.genres(), id)
}
