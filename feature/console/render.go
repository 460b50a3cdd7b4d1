package console

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"catalog-manager/feature/catalog/models"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	colorText    = lipgloss.Color("#20B9B4")
	colorListing = lipgloss.Color("#F4D03F")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorError   = lipgloss.Color("#E74C3C")
)

// theme holds styles bound to one output. Writers that are not terminals get plain text.
type theme struct {
	text    lipgloss.Style
	listing lipgloss.Style
	success lipgloss.Style
	fail    lipgloss.Style
}

func newTheme(w io.Writer, color bool) theme {
	r := lipgloss.NewRenderer(w)
	t := theme{
		text:    r.NewStyle(),
		listing: r.NewStyle(),
		success: r.NewStyle(),
		fail:    r.NewStyle(),
	}
	if !color {
		return t
	}
	t.text = t.text.Foreground(colorText)
	t.listing = t.listing.Foreground(colorListing).Bold(true)
	t.success = t.success.Foreground(colorSuccess)
	t.fail = t.fail.Foreground(colorError)
	return t
}

// printer writes localized, styled lines.
type printer struct {
	out    io.Writer
	msgs   *Messages
	theme  theme
	locale string
}

func (p *printer) line(s string) {
	_, _ = io.WriteString(p.out, s+"\n")
}

func (p *printer) msg(key string, args ...any) string {
	return p.msgs.Get(p.locale, key, args...)
}

func (p *printer) text(key string, args ...any) {
	p.line(p.theme.text.Render(p.msg(key, args...)))
}

func (p *printer) success(key string, args ...any) {
	p.line(p.theme.success.Render(p.msg(key, args...)))
}

func (p *printer) fail(key string, args ...any) {
	p.line(p.theme.fail.Render(p.msg(key, args...)))
}

func (p *printer) field(labelKey, value string) string {
	return p.theme.listing.Render(p.msg(labelKey)+":") + " " + value
}

func (p *printer) books(books []models.Book) {
	if len(books) == 0 {
		p.text("service.listEmpty")
		return
	}
	for _, b := range books {
		p.line(strings.Join([]string{
			p.field("book.id", strconv.Itoa(b.ID)),
			p.field("book.title", b.Title),
			p.field("book.author", b.Author.Name),
			p.field("book.description", b.Description),
			p.field("book.genre", b.Genre.Name),
		}, ", "))
	}
}

func (p *printer) authors(authors []models.Author) {
	if len(authors) == 0 {
		p.text("service.listEmpty")
		return
	}
	for _, a := range authors {
		p.line(p.field("book.id", strconv.Itoa(a.ID)) + ", " + p.field("book.author", a.Name))
	}
}

// failure maps an error to its localized message.
func (p *printer) failure(err error, notFoundKey string) {
	if errors.Is(err, models.ErrInUse) {
		p.fail("service.inUse")
		return
	}
	switch models.KindOf(err) {
	case models.KindNotFound:
		p.fail(notFoundKey)
	case models.KindValidation:
		p.fail("service.validationError", err.Error())
	case models.KindPersistenceFailed:
		p.fail("service.persistenceFailed")
	case models.KindStorage:
		p.fail("service.DbError")
	default:
		p.fail("service.unknownError")
	}
}
