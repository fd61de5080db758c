package due

import (
	"errors"
	"testing"
	"time"
)

// Wednesday 2026-03-04 10:30 UTC.
var wednesday = time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

func TestParse_Today(t *testing.T) {
	got, err := Parse("today", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParse_Tomorrow(t *testing.T) {
	got, err := Parse("tom", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 5 || got.Hour() != 23 {
		t.Fatalf("expected end of March 5, got %v", got)
	}
}

func TestParse_Weekday(t *testing.T) {
	got, err := Parse("fri", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Weekday() != time.Friday || got.Day() != 6 {
		t.Fatalf("expected Friday March 6, got %v", got)
	}
}

func TestParse_SameWeekdayMeansNextWeek(t *testing.T) {
	got, err := Parse("wednesday", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 11 {
		t.Fatalf("expected Wednesday March 11, got %v", got)
	}
}

func TestParse_NextWeekday(t *testing.T) {
	got, err := Parse("next fri", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 13 {
		t.Fatalf("expected Friday March 13, got %v", got)
	}
}

func TestParse_NextWeekAndMonth(t *testing.T) {
	week, err := Parse("next week", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if week.Day() != 11 {
		t.Fatalf("expected March 11, got %v", week)
	}
	month, err := Parse("next month", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if month.Month() != time.April || month.Day() != 4 {
		t.Fatalf("expected April 4, got %v", month)
	}
}

func TestParse_InNDays(t *testing.T) {
	got, err := Parse("in 3 days", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 7 {
		t.Fatalf("expected March 7, got %v", got)
	}
	bare, err := Parse("2 weeks", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bare.Day() != 18 {
		t.Fatalf("expected March 18, got %v", bare)
	}
}

func TestParse_EndOfWeek(t *testing.T) {
	got, err := Parse("eow", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Weekday() != time.Sunday || got.Day() != 8 {
		t.Fatalf("expected Sunday March 8, got %v", got)
	}
}

func TestParse_EndOfMonth(t *testing.T) {
	got, err := Parse("eom", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Month() != time.March || got.Day() != 31 {
		t.Fatalf("expected March 31, got %v", got)
	}
}

func TestParse_AbsoluteDate(t *testing.T) {
	got, err := Parse("2026-09-01", wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.September || got.Day() != 1 {
		t.Fatalf("expected Sep 1 2026, got %v", got)
	}
	if got.Hour() != 23 {
		t.Fatalf("expected bare date to resolve to end of day, got %v", got)
	}
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("when pigs fly", wednesday)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse("   ", wednesday); err == nil {
		t.Fatal("expected error for blank input")
	}
}
