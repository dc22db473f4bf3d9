package timeutil

import (
	"errors"
	"testing"
	"time"

	"github.com/saurabhkm/pland/internal/model"
)

func localTime(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
}

func TestMinutesSinceMidnight(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := MinutesSinceMidnight(tc.clock)
		if err != nil {
			t.Fatalf("minutes for %q: %v", tc.clock, err)
		}
		if got != tc.want {
			t.Fatalf("minutes for %q: got %d, want %d", tc.clock, got, tc.want)
		}
	}
	if _, err := MinutesSinceMidnight("25:00"); !errors.Is(err, model.ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}
}

func TestNextOccurrenceRollsToTomorrow(t *testing.T) {
	now := localTime(t, 10, 0)

	future, err := NextOccurrence("10:30", now)
	if err != nil {
		t.Fatalf("next occurrence: %v", err)
	}
	if future.Day() != now.Day() || future.Hour() != 10 || future.Minute() != 30 {
		t.Fatalf("expected today 10:30, got %v", future)
	}

	passed, err := NextOccurrence("09:00", now)
	if err != nil {
		t.Fatalf("next occurrence: %v", err)
	}
	if !passed.After(now) || passed.Day() != now.AddDate(0, 0, 1).Day() {
		t.Fatalf("expected tomorrow 09:00, got %v", passed)
	}

	exact, err := NextOccurrence("10:00", now)
	if err != nil {
		t.Fatalf("next occurrence: %v", err)
	}
	if !exact.Equal(now) {
		t.Fatalf("expected today's slot when not earlier than now, got %v", exact)
	}
}

func TestIsNowWithinHalfOpenInterval(t *testing.T) {
	dur := 30
	act := model.Activity{StartTime: "10:00", DurationMinutes: &dur}

	cases := []struct {
		now  time.Time
		want bool
	}{
		{localTime(t, 10, 15), true},
		{localTime(t, 10, 0), true},
		{localTime(t, 10, 30), false}, // end excluded
		{localTime(t, 9, 59), false},
	}
	for _, tc := range cases {
		if got := IsNowWithin(act, tc.now); got != tc.want {
			t.Fatalf("IsNowWithin at %v: got %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestIsNowWithinDoesNotRollOverMidnight(t *testing.T) {
	act := model.Activity{StartTime: "23:50"}
	// Next morning: yesterday's slot must not read as now.
	if IsNowWithin(act, localTime(t, 0, 5)) {
		t.Fatal("expected past slot on a new day to read as not-now")
	}
}

func TestIsNowWithinDefaultDuration(t *testing.T) {
	act := model.Activity{StartTime: "10:00"}
	if !IsNowWithin(act, localTime(t, 10, 29)) {
		t.Fatal("expected default 30-minute duration to cover 10:29")
	}
	if IsNowWithin(act, localTime(t, 10, 30)) {
		t.Fatal("expected default 30-minute duration to exclude 10:30")
	}
}

func TestIsUpcomingWithin(t *testing.T) {
	now := localTime(t, 9, 0)
	within := model.Activity{StartTime: "09:45"}
	beyond := model.Activity{StartTime: "10:15"}

	if !IsUpcomingWithin(within, now, DefaultUpcomingWindow) {
		t.Fatal("expected activity 45 minutes out to be upcoming")
	}
	if IsUpcomingWithin(beyond, now, DefaultUpcomingWindow) {
		t.Fatal("expected activity 75 minutes out not to be upcoming")
	}
	if IsUpcomingWithin(model.Activity{StartTime: "09:00"}, now, DefaultUpcomingWindow) {
		t.Fatal("expected activity starting exactly now not to be upcoming")
	}
	if IsUpcomingWithin(model.Activity{StartTime: "10:00"}, now, DefaultUpcomingWindow) {
		t.Fatal("expected strict upper bound on the window")
	}
}

func TestTimeUntilLabel(t *testing.T) {
	now := localTime(t, 9, 0)
	if got := TimeUntilLabel("09:45", now); got != "in 45m" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := TimeUntilLabel("11:30", now); got != "in 2h 30m" {
		t.Fatalf("unexpected label: %q", got)
	}
	// Passed today: rolls to tomorrow.
	if got := TimeUntilLabel("08:00", now); got != "in 23h 0m" {
		t.Fatalf("unexpected rolled label: %q", got)
	}
}

func TestFormatDisplayRoundTripsThroughParse(t *testing.T) {
	cases := []struct {
		clock string
		want  string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"09:05", "9:05 AM"},
		{"12:00", "12:00 PM"},
		{"13:45", "1:45 PM"},
		{"23:59", "11:59 PM"},
	}
	for _, tc := range cases {
		display := FormatDisplay(tc.clock)
		if display != tc.want {
			t.Fatalf("display for %q: got %q, want %q", tc.clock, display, tc.want)
		}
		back, err := ParseTimeInput(display)
		if err != nil {
			t.Fatalf("parse %q: %v", display, err)
		}
		if back != tc.clock {
			t.Fatalf("round trip for %q: got %q", tc.clock, back)
		}
	}
}

func TestParseTimeInput(t *testing.T) {
	got, err := ParseTimeInput("07:15")
	if err != nil || got != "07:15" {
		t.Fatalf("canonical input: got %q, %v", got, err)
	}
	got, err = ParseTimeInput("7:15 pm")
	if err != nil || got != "19:15" {
		t.Fatalf("12-hour input: got %q, %v", got, err)
	}
	if _, err := ParseTimeInput("quarter past seven"); !errors.Is(err, ErrUnparsableTime) {
		t.Fatalf("expected ErrUnparsableTime, got %v", err)
	}
}

func TestEndClock(t *testing.T) {
	dur := 45
	if got := EndClock(model.Activity{StartTime: "09:30", DurationMinutes: &dur}); got != "10:15" {
		t.Fatalf("unexpected end clock: %q", got)
	}
	if got := EndClock(model.Activity{StartTime: "23:50"}); got != "00:20" {
		t.Fatalf("expected wall-clock wrap, got %q", got)
	}
}

func TestSortByStartTimeIsStable(t *testing.T) {
	activities := []model.Activity{
		{ID: "A", StartTime: "09:00"},
		{ID: "B", StartTime: "08:00"},
		{ID: "C", StartTime: "08:00"},
	}
	sorted := SortByStartTime(activities)

	order := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	want := []string{"B", "C", "A"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order: %v", order)
		}
	}
	// Input untouched.
	if activities[0].ID != "A" {
		t.Fatal("expected input slice unchanged")
	}
}
