package service

import "github.com/cockroachdb/errors"

// Sentinel errors returned by the session service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrUnknownPanel = errors.New("unknown panel")
)
