package calendar

import (
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/validator"
)

// Calendar resolves "today" against a reference time zone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc, now: time.Now}
}

// WithClock returns a copy that reads the current instant from now.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: now}
}

// Today returns the current calendar date in the reference zone, as midnight UTC.
func (c *Calendar) Today() time.Time {
	return DateOf(c.now().In(c.loc))
}

// DateOf strips the time-of-day, keeping the wall-clock date of t.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Format renders a date as YYYY-MM-DD.
func Format(d time.Time) string {
	return d.Format(validator.DateLayout)
}
