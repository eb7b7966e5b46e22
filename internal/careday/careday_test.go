package careday

import (
	"testing"
	"time"
)

func eastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestDayForBeforeResetHour(t *testing.T) {
	loc := eastern(t)
	calc := New(loc, 4)

	// 3:59:59 AM on Jan 2nd still belongs to Jan 1st.
	got := calc.DayFor(time.Date(2025, 1, 2, 3, 59, 59, 0, loc))
	want := Date(2025, 1, 1)
	if !got.Equal(want) {
		t.Errorf("DayFor(3:59:59) = %v, want %v", got, want)
	}
}

func TestDayForAtResetHour(t *testing.T) {
	loc := eastern(t)
	calc := New(loc, 4)

	// 4:00:00 AM is the first instant of the new care day.
	got := calc.DayFor(time.Date(2025, 1, 2, 4, 0, 0, 0, loc))
	want := Date(2025, 1, 2)
	if !got.Equal(want) {
		t.Errorf("DayFor(4:00:00) = %v, want %v", got, want)
	}
}

func TestDayForCrossesMonthBoundary(t *testing.T) {
	loc := eastern(t)
	calc := New(loc, 4)

	got := calc.DayFor(time.Date(2025, 3, 1, 0, 30, 0, 0, loc))
	want := Date(2025, 2, 28)
	if !got.Equal(want) {
		t.Errorf("DayFor(Mar 1 00:30) = %v, want %v", got, want)
	}
}

func TestDayForConvertsForeignZone(t *testing.T) {
	loc := eastern(t)
	calc := New(loc, 4)

	// 08:30 UTC == 3:30 AM EST, so the care day is still the prior date.
	got := calc.DayFor(time.Date(2025, 1, 2, 8, 30, 0, 0, time.UTC))
	want := Date(2025, 1, 1)
	if !got.Equal(want) {
		t.Errorf("DayFor(08:30 UTC) = %v, want %v", got, want)
	}
}

func TestBoundariesHalfOpen(t *testing.T) {
	loc := eastern(t)
	calc := New(loc, 4)

	day := Date(2025, 1, 2)
	start, end := calc.Boundaries(day)

	wantStart := time.Date(2025, 1, 2, 4, 0, 0, 0, loc)
	wantEnd := time.Date(2025, 1, 3, 4, 0, 0, 0, loc)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	// The boundaries must agree with DayFor on both edges.
	if got := calc.DayFor(start); !got.Equal(day) {
		t.Errorf("DayFor(start) = %v, want %v", got, day)
	}
	if got := calc.DayFor(end); got.Equal(day) {
		t.Errorf("DayFor(end) should belong to the next day, got %v", got)
	}
	if got := calc.DayFor(end.Add(-time.Second)); !got.Equal(day) {
		t.Errorf("DayFor(end-1s) = %v, want %v", got, day)
	}
}

func TestNewDefaults(t *testing.T) {
	calc := New(nil, -1)
	if calc.ResetHour() != DefaultResetHour {
		t.Errorf("reset hour = %d, want %d", calc.ResetHour(), DefaultResetHour)
	}
	if calc.Location() == nil {
		t.Error("location should never be nil")
	}
}
