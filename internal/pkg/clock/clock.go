// Package clock provides time utilities for the application
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/lesson-forge/internal/pkg/clock Clock

// DayLayout is the day-stamp format used for cache fingerprints.
const DayLayout = "20060102"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed is a Clock pinned to a moment. Advance moves it forward.
type Fixed struct {
	t time.Time
}

// NewFixed returns a clock that always reports t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

// Now returns the pinned time
func (c *Fixed) Now() time.Time {
	return c.t
}

// Advance moves the pinned time forward by d
func (c *Fixed) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// DayStamp formats t as YYYYMMDD
func DayStamp(t time.Time) string {
	return t.Format(DayLayout)
}
