package api

import "github.com/cockroachdb/errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnknownPanel = errors.New("unknown panel")
	ErrNotReady     = errors.New("dataset not loaded")
	ErrNoVideo      = errors.New("video not available")
)
