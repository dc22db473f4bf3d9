package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/timeutil"
)

func plainColors(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestResolveActivity(t *testing.T) {
	activities := []model.Activity{
		{ID: "aaa111", Title: "Workout"},
		{ID: "aab222", Title: "Lunch"},
		{ID: "bcd333", Title: "Reading"},
	}

	got, err := resolveActivity(activities, "Lunch")
	if err != nil || got.ID != "aab222" {
		t.Fatalf("exact title: %v, %v", got, err)
	}
	got, err = resolveActivity(activities, "bcd")
	if err != nil || got.Title != "Reading" {
		t.Fatalf("id prefix: %v, %v", got, err)
	}
	if _, err := resolveActivity(activities, "aa"); err == nil {
		t.Fatal("expected ambiguous prefix error")
	}
	if _, err := resolveActivity(activities, "zzz"); err == nil {
		t.Fatal("expected no-match error")
	}
}

func TestListLineMarkers(t *testing.T) {
	plainColors(t)
	a := model.Activity{ID: "aaa111bbccdd", Title: "Workout", StartTime: "07:00"}
	now := time.Date(2026, 3, 2, 7, 10, 0, 0, time.Local)

	line := listLine(a, now, timeutil.DefaultUpcomingWindow)
	if !strings.Contains(line, "happening now") {
		t.Fatalf("expected now marker, got %q", line)
	}

	now = time.Date(2026, 3, 2, 6, 30, 0, 0, time.Local)
	line = listLine(a, now, timeutil.DefaultUpcomingWindow)
	if !strings.Contains(line, "in 30m") {
		t.Fatalf("expected upcoming label, got %q", line)
	}

	now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	line = listLine(a, now, timeutil.DefaultUpcomingWindow)
	if !strings.Contains(line, "Workout") || strings.Contains(line, "·") {
		t.Fatalf("expected plain line, got %q", line)
	}
	if !strings.Contains(line, "aaa111bb") {
		t.Fatalf("expected id prefix, got %q", line)
	}
}

func TestUntilNextMidnight(t *testing.T) {
	now := time.Date(2026, 3, 2, 23, 0, 0, 0, time.Local)
	d := untilNextMidnight(now)
	if d != time.Hour+time.Second {
		t.Fatalf("expected 1h1s, got %v", d)
	}
}
