package repository

import "github.com/cockroachdb/errors"

// Sentinel kinds for sample store errors.
var (
	ErrInvalidRange = errors.New("invalid time range")
)
