package render

import "github.com/cockroachdb/errors"

// Sentinel kinds for render errors.
var (
	ErrNoStatistic     = errors.New("no statistic to render")
	ErrUnsupportedMode = errors.New("binning mode not supported by panel")
)
