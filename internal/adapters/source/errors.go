package source

import "github.com/cockroachdb/errors"

// Sentinel kinds for source errors.
var (
	ErrOpen = errors.New("open positions file")
)
