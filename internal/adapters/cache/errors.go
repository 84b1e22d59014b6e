package cache

import "github.com/cockroachdb/errors"

// Sentinel kinds for cache errors.
var (
	ErrNilLoader = errors.New("loader is required")
)
