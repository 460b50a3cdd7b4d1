package console

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// reader reads trimmed lines. io.EOF ends the session.
type reader struct {
	scanner *bufio.Scanner
}

func newReader(in io.Reader) *reader {
	return &reader{scanner: bufio.NewScanner(in)}
}

func (r *reader) line() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

// number reads one integer. ok is false when the line is not a number.
func (r *reader) number() (n int, ok bool, err error) {
	raw, err := r.line()
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(raw)
	return n, convErr == nil, nil
}

// id prompts until a non-negative integer is entered.
func (r *reader) id(p *printer, promptKey string) (int, error) {
	for {
		p.text(promptKey)
		n, ok, err := r.number()
		switch {
		case err != nil:
			return 0, err
		case !ok:
			p.fail("handler.notNumber")
		case n < 0:
			p.fail("handler.invalidId")
		default:
			return n, nil
		}
	}
}

// keep returns current when the entered value is blank.
func keep(entered, current string) string {
	if entered == "" {
		return current
	}
	return entered
}
