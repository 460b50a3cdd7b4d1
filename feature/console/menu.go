package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"catalog-manager/core/logger"
	"catalog-manager/feature/catalog/models"

	"go.uber.org/zap"
)

// Service is the part of the catalog service the menu drives.
type Service interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	FindBooksByName(ctx context.Context, fragment string) ([]models.Book, error)
	AddBook(ctx context.Context, book models.Book) (models.Book, error)
	GetBook(ctx context.Context, id int) (models.Book, error)
	BookExists(ctx context.Context, id int) (bool, error)
	EditBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id int) error
	ListAuthors(ctx context.Context) ([]models.Author, error)
	DeleteAuthor(ctx context.Context, id int) (int, error)
}

// Options tunes a Menu.
type Options struct {
	// Locale skips the language menu when it names a known locale.
	Locale string
	Color  bool
	Logger *zap.Logger
}

// Menu is the interactive catalog session.
type Menu struct {
	svc    Service
	in     *reader
	p      *printer
	log    *zap.Logger
	preset bool
}

// Action menu choices.
const (
	actionExit = iota
	actionList
	actionFind
	actionCreate
	actionEdit
	actionDeleteBook
	actionDeleteAuthor
)

// NewMenu builds a menu reading from in and writing to out.
func NewMenu(svc Service, in io.Reader, out io.Writer, opts Options) (*Menu, error) {
	msgs, err := LoadMessages()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Locale != "" && !msgs.Has(opts.Locale) {
		return nil, fmt.Errorf("unknown locale %q, available: %v", opts.Locale, msgs.Locales())
	}

	locale := opts.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	p := &printer{
		out:    out,
		msgs:   msgs,
		theme:  newTheme(out, opts.Color),
		locale: locale,
	}
	return &Menu{
		svc:    svc,
		in:     newReader(in),
		p:      p,
		log:    opts.Logger,
		preset: opts.Locale != "",
	}, nil
}

// Run drives the session until the user exits, input ends or ctx is cancelled.
// Leaving the action menu returns to the language menu unless the locale was preset.
func (m *Menu) Run(ctx context.Context) error {
	err := m.run(ctx)
	if errors.Is(err, io.EOF) {
		m.log.Debug("Input closed, ending session")
		return nil
	}
	return err
}

func (m *Menu) run(ctx context.Context) error {
	for {
		if !m.preset {
			chosen, err := m.chooseLanguage()
			if err != nil {
				return err
			}
			if !chosen {
				m.p.text("menu.exitMessage")
				return nil
			}
		}
		if err := m.actions(ctx); err != nil {
			return err
		}
		if m.preset {
			m.p.text("menu.exitMessage")
			return nil
		}
	}
}

// chooseLanguage sets the locale. It returns false when the user exits.
func (m *Menu) chooseLanguage() (bool, error) {
	for {
		m.p.text("menu.language")
		m.p.text("menu.option1")
		m.p.text("menu.option2")
		m.p.text("menu.exit")

		n, ok, err := m.in.number()
		if err != nil {
			return false, err
		}
		switch {
		case !ok:
			m.p.fail("menu.notNumber")
		case n == 0:
			return false, nil
		case n == 1:
			m.p.locale = "ru"
			return true, nil
		case n == 2:
			m.p.locale = "en"
			return true, nil
		default:
			m.p.fail("menu.invalid")
		}
	}
}

func (m *Menu) actions(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, key := range []string{
			"menu.action", "menu.listBooks", "menu.findBook", "menu.createBook",
			"menu.editBook", "menu.deleteBook", "menu.deleteAuthor", "menu.exitAction",
		} {
			m.p.text(key)
		}

		n, ok, err := m.in.number()
		if err != nil {
			return err
		}
		if !ok {
			m.p.fail("menu.notNumber")
			continue
		}

		switch n {
		case actionExit:
			return nil
		case actionList:
			m.list(ctx)
		case actionFind:
			err = m.find(ctx)
		case actionCreate:
			err = m.create(ctx)
		case actionEdit:
			err = m.edit(ctx)
		case actionDeleteBook:
			err = m.deleteBook(ctx)
		case actionDeleteAuthor:
			err = m.deleteAuthor(ctx)
		default:
			m.p.fail("menu.invalid")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) op(name string) *zap.Logger {
	return logger.WithOperation(m.log, "menu_"+name)
}

// ask prints a prompt and reads one line.
func (m *Menu) ask(key string, args ...any) (string, error) {
	m.p.text(key, args...)
	return m.in.line()
}

func (m *Menu) list(ctx context.Context) {
	books, err := m.svc.ListBooks(ctx)
	if err != nil {
		m.op("list").Debug("Listing failed", zap.Error(err))
		m.p.failure(err, "service.notFound")
		return
	}
	m.p.books(books)
}

func (m *Menu) find(ctx context.Context) error {
	fragment, err := m.ask("handler.readFindTitle")
	if err != nil {
		return err
	}
	books, err := m.svc.FindBooksByName(ctx, fragment)
	if err != nil {
		m.op("find").Debug("Search failed", zap.String("fragment", fragment), zap.Error(err))
		m.p.failure(err, "service.notFound")
		return nil
	}
	m.p.books(books)
	return nil
}

func (m *Menu) create(ctx context.Context) error {
	var book models.Book
	var err error
	if book.Title, err = m.ask("handler.readNewTitle"); err != nil {
		return err
	}
	if book.Author.Name, err = m.ask("handler.readNewAuthor"); err != nil {
		return err
	}
	if book.Description, err = m.ask("handler.readNewDescription"); err != nil {
		return err
	}
	if book.Genre.Name, err = m.ask("handler.readNewGenre"); err != nil {
		return err
	}

	added, err := m.svc.AddBook(ctx, book)
	if err != nil {
		m.op("create").Debug("Add failed", zap.String("title", book.Title), zap.Error(err))
		m.p.failure(err, "service.notFound")
		return nil
	}
	m.p.success("service.addBook", added.Title, added.ID)
	return nil
}

func (m *Menu) edit(ctx context.Context) error {
	id, err := m.in.id(m.p, "handler.readNewId")
	if err != nil {
		return err
	}
	exists, err := m.svc.BookExists(ctx, id)
	if err != nil {
		m.p.failure(err, "service.notFoundBookById")
		return nil
	}
	if !exists {
		m.p.fail("service.notFoundBookById")
		return nil
	}
	book, err := m.svc.GetBook(ctx, id)
	if err != nil {
		m.p.failure(err, "service.notFoundBookById")
		return nil
	}

	var entered string
	if entered, err = m.ask("handler.readAddTitle", book.Title); err != nil {
		return err
	}
	book.Title = keep(entered, book.Title)
	if entered, err = m.ask("handler.readAddAuthor", book.Author.Name); err != nil {
		return err
	}
	if entered != "" && entered != book.Author.Name {
		book.Author = models.Author{Name: entered}
	}
	if entered, err = m.ask("handler.readAddDescription"); err != nil {
		return err
	}
	book.Description = keep(entered, book.Description)
	if entered, err = m.ask("handler.readAddGenre", book.Genre.Name); err != nil {
		return err
	}
	if entered != "" && entered != book.Genre.Name {
		book.Genre = models.Genre{Name: entered}
	}

	if err := m.svc.EditBook(ctx, &book); err != nil {
		m.op("edit").Debug("Edit failed", zap.Int("id", id), zap.Error(err))
		m.p.failure(err, "service.notFoundBookById")
		return nil
	}
	m.p.success("service.editBook", id)
	return nil
}

func (m *Menu) deleteBook(ctx context.Context) error {
	id, err := m.in.id(m.p, "handler.readDeleteId")
	if err != nil {
		return err
	}
	if err := m.svc.DeleteBook(ctx, id); err != nil {
		m.op("delete_book").Debug("Delete failed", zap.Int("id", id), zap.Error(err))
		m.p.failure(err, "service.notFoundBookById")
		return nil
	}
	m.p.success("service.deleteBook", id)
	return nil
}

func (m *Menu) deleteAuthor(ctx context.Context) error {
	authors, err := m.svc.ListAuthors(ctx)
	if err != nil {
		m.p.failure(err, "service.notFound")
		return nil
	}
	m.p.authors(authors)

	id, err := m.in.id(m.p, "handler.readDeleteId")
	if err != nil {
		return err
	}
	removed, err := m.svc.DeleteAuthor(ctx, id)
	if err != nil {
		m.op("delete_author").Debug("Delete failed", zap.Int("id", id), zap.Error(err))
		m.p.failure(err, "service.notFound")
		return nil
	}
	m.p.success("service.deleteAuthor", id, removed)
	return nil
}
