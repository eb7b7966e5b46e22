// Package careday maps wall-clock instants to logical "care days".
//
// A care day does not roll over at midnight but at a fixed reset hour
// (4 AM by default), so a 3:59 AM dose still counts toward the previous
// day. Care days are represented as midnight-UTC dates so they compare
// and store cleanly regardless of the household timezone.
package careday

import "time"

// DefaultResetHour is the local hour at which a new care day begins.
const DefaultResetHour = 4

// DefaultTimezone is used when no household timezone is configured.
const DefaultTimezone = "America/New_York"

// Calculator derives care days for a fixed timezone and reset hour.
// It never reads the clock itself: callers pass the observation instant,
// computed once per logical operation so a day boundary crossed
// mid-operation cannot skew results.
type Calculator struct {
	loc       *time.Location
	resetHour int
}

// New builds a Calculator. A nil location falls back to DefaultTimezone
// (UTC if even that fails to load), and an out-of-range reset hour falls
// back to DefaultResetHour.
func New(loc *time.Location, resetHour int) *Calculator {
	if loc == nil {
		var err error
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
	}
	if resetHour < 0 || resetHour > 23 {
		resetHour = DefaultResetHour
	}
	return &Calculator{loc: loc, resetHour: resetHour}
}

// Location returns the calculator's timezone.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// ResetHour returns the local hour at which the care day rolls over.
func (c *Calculator) ResetHour() int {
	return c.resetHour
}

// DayFor returns the care day that contains t. Local hours before the
// reset hour belong to the previous calendar day.
func (c *Calculator) DayFor(t time.Time) time.Time {
	local := t.In(c.loc)
	if local.Hour() < c.resetHour {
		local = local.AddDate(0, 0, -1)
	}
	return Date(local.Year(), local.Month(), local.Day())
}

// Boundaries returns the half-open interval [start, end) of wall-clock
// time covered by the given care day: reset hour on that date up to the
// reset hour on the following date.
func (c *Calculator) Boundaries(day time.Time) (start, end time.Time) {
	start = time.Date(day.Year(), day.Month(), day.Day(), c.resetHour, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 0, 1)
}

// Date builds the canonical care-day value for a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate normalizes an arbitrary timestamp already known to represent
// a care day (e.g. read back from the store) to the canonical form.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}
