package model

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds shared by the loader, the core computations and the renderers.
// Only ErrInvalidInput is fatal; the other two are contained to a single panel.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptySelection     = errors.New("empty selection")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// InvalidInputError describes a malformed input row or a missing column.
// Row is 1-based and counts the header; zero means the whole input.
type InvalidInputError struct {
	Column string
	Row    int
	Reason string
}

func (e *InvalidInputError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("invalid input: row %d, column %q: %s", e.Row, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("invalid input: column %q: %s", e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("invalid input: row %d: %s", e.Row, e.Reason)
	}
	return "invalid input: " + e.Reason
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(column string, row int, reason string) error {
	return &InvalidInputError{Column: column, Row: row, Reason: reason}
}

// IsNonFatal reports whether err should only degrade a single panel.
func IsNonFatal(err error) bool {
	return errors.Is(err, ErrEmptySelection) || errors.Is(err, ErrDegenerateGeometry)
}
