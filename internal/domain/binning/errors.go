package binning

import "github.com/cockroachdb/errors"

// Sentinel kinds for binning errors.
var (
	ErrUnknownMode = errors.New("unknown binning mode")
	ErrInvalidGrid = errors.New("invalid grid size")
)
