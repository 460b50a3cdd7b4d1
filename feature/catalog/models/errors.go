package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when a lookup by id or name yields nothing.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed input rejected before the store.
	ErrValidation = errors.New("validation failed")
	// ErrStorage is returned for I/O or constraint failures inside a store.
	ErrStorage = errors.New("storage failure")
	// ErrPersistenceFailed is returned when a store accepted a write but assigned no id.
	ErrPersistenceFailed = errors.New("persistence failed")
	// ErrInUse is returned when deleting an author or genre still referenced by books.
	ErrInUse = fmt.Errorf("%w: referenced by books", ErrStorage)
)

// ErrorKind classifies an error for the presentation layer.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindValidation
	KindStorage
	KindPersistenceFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	case KindPersistenceFailed:
		return "persistence_failed"
	default:
		return "unknown"
	}
}

// KindOf maps an error to its kind. A nil error is KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrPersistenceFailed):
		return KindPersistenceFailed
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}

// StoreError wraps a backend failure so it matches both ErrStorage and the cause.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err for operation op. A nil err returns nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// MissingRefError reports a book write naming an author or genre id that does not exist.
// It is a storage failure, not a lookup miss.
func MissingRefError(op string, ref RefKind, id int) error {
	return &StoreError{Op: op, Err: fmt.Errorf("%s %d does not exist", ref, id)}
}

// NotFoundError builds an ErrNotFound for an entity kind and key.
func NotFoundError(kind string, key any) error {
	return fmt.Errorf("%s %v: %w", kind, key, ErrNotFound)
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if field == "" {
			field = "value"
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", field, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
