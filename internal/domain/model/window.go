package model

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const maxSecond = 59

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// TimeWindow is the user-selected filter: a minute range plus a second within
// the start minute for instant views.
type TimeWindow struct {
	StartMinute int `json:"start_minute" validate:"gte=0"`
	EndMinute   int `json:"end_minute" validate:"gte=0,gtefield=StartMinute"`
	Second      int `json:"second" validate:"gte=0,lte=59"`
}

// FullWindow covers the whole match starting at second zero.
func FullWindow(maxMinute int) TimeWindow {
	if maxMinute < 0 {
		maxMinute = 0
	}
	return TimeWindow{StartMinute: 0, EndMinute: maxMinute}
}

// Validate checks field ranges and that the window ends at or before maxMinute.
func (w TimeWindow) Validate(maxMinute int) error {
	if err := validatorInstance().Struct(w); err != nil {
		return errors.Wrapf(ErrInvalidInput, "time window: %v", err)
	}
	if w.EndMinute > maxMinute {
		return errors.Wrapf(ErrInvalidInput, "time window: end minute %d exceeds match length %d", w.EndMinute, maxMinute)
	}
	return nil
}

// Range returns the inclusive millisecond bounds used by window views.
func (w TimeWindow) Range() (int64, int64) {
	return int64(w.StartMinute) * MillisPerMinute, int64(w.EndMinute) * MillisPerMinute
}

// Instant returns the absolute millisecond used by instant views.
func (w TimeWindow) Instant() int64 {
	return int64(w.StartMinute)*MillisPerMinute + int64(w.Second)*MillisPerSecond
}

// RangeLabel renders the window as "MM:00 - MM:00".
func (w TimeWindow) RangeLabel() string {
	return fmt.Sprintf("%02d:00 - %02d:00", w.StartMinute, w.EndMinute)
}

// InstantLabel renders the instant as "MM:SS".
func (w TimeWindow) InstantLabel() string {
	return fmt.Sprintf("%02d:%02d", w.StartMinute, w.Second)
}

// String implements fmt.Stringer for log fields.
func (w TimeWindow) String() string {
	return fmt.Sprintf("%d-%d@%d", w.StartMinute, w.EndMinute, w.Second)
}

// clampSecond keeps helpers total for callers that build windows by hand.
func clampSecond(s int) int {
	if s < 0 {
		return 0
	}
	if s > maxSecond {
		return maxSecond
	}
	return s
}

// WithSecond returns a copy of w with the second clamped into [0, 59].
func (w TimeWindow) WithSecond(s int) TimeWindow {
	w.Second = clampSecond(s)
	return w
}
