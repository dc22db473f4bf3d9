// Package timeutil holds the pure time-of-day arithmetic behind the schedule:
// converting "HH:mm" strings to instants, classifying an activity against the
// current moment, and formatting times for display. Everything operates in
// the device's local zone and takes an explicit reference instant, so tests
// can pin "now".
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/saurabhkm/pland/internal/model"
)

// DefaultUpcomingWindow is how far ahead an activity still counts as
// "upcoming". Configurable; nothing depends on it being exactly an hour.
const DefaultUpcomingWindow = 60 * time.Minute

var ErrUnparsableTime = errors.New("timeutil: unparsable time input")

var twelveHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

// MinutesSinceMidnight converts "HH:mm" to minutes since local midnight
// (0-1439). Used for ordering only.
func MinutesSinceMidnight(clock string) (int, error) {
	hour, minute, err := model.ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// TodayAt resolves a time-of-day against the calendar date of now, in now's
// location. The result may already be in the past.
func TodayAt(clock string, now time.Time) (time.Time, error) {
	hour, minute, err := model.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := now.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, now.Location()), nil
}

// NextOccurrence returns the nearest instant at or after now that matches the
// given time-of-day: today's candidate, or tomorrow's when today's has
// already passed.
func NextOccurrence(clock string, now time.Time) (time.Time, error) {
	candidate, err := TodayAt(clock, now)
	if err != nil {
		return time.Time{}, err
	}
	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}

// IsNowWithin reports whether now falls inside [start, start+duration)
// computed against today's occurrence of the start time. An activity whose
// slot passed earlier today reads as not-now; this deliberately never rolls
// into tomorrow, unlike scheduling.
func IsNowWithin(a model.Activity, now time.Time) bool {
	start, err := TodayAt(a.StartTime, now)
	if err != nil {
		return false
	}
	end := start.Add(time.Duration(a.DurationOrDefault()) * time.Minute)
	return !now.Before(start) && now.Before(end)
}

// IsUpcomingWithin reports whether today's occurrence of the start time is
// strictly between now and now+window.
func IsUpcomingWithin(a model.Activity, now time.Time, window time.Duration) bool {
	start, err := TodayAt(a.StartTime, now)
	if err != nil {
		return false
	}
	return start.After(now) && start.Before(now.Add(window))
}

// TimeUntilLabel renders "in Xm" or "in Xh Ym" against the next occurrence of
// the time-of-day, rolling to tomorrow when today's has passed.
func TimeUntilLabel(clock string, now time.Time) string {
	target, err := NextOccurrence(clock, now)
	if err != nil {
		return ""
	}
	minutes := int(target.Sub(now) / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("in %dm", minutes)
	}
	return fmt.Sprintf("in %dh %dm", minutes/60, minutes%60)
}

// FormatDisplay converts "HH:mm" to 12-hour "h:mm AM/PM".
func FormatDisplay(clock string) string {
	hour, minute, err := model.ParseClock(clock)
	if err != nil {
		return clock
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// ParseTimeInput normalizes user time input to "HH:mm". It accepts the
// canonical 24-hour form as well as "h:mm AM/PM".
func ParseTimeInput(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if _, _, err := model.ParseClock(trimmed); err == nil {
		return trimmed, nil
	}
	match := twelveHourPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrUnparsableTime, input)
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrUnparsableTime, input)
	}
	period := strings.ToUpper(match[3])
	if period == "PM" && hour != 12 {
		hour += 12
	}
	if period == "AM" && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// CurrentClock renders now as a "HH:mm" string.
func CurrentClock(now time.Time) string {
	return now.Format("15:04")
}

// EndClock is the activity's end time-of-day, using the default duration when
// none is set. Wraps past midnight the way wall clocks do.
func EndClock(a model.Activity) string {
	minutes, err := MinutesSinceMidnight(a.StartTime)
	if err != nil {
		return ""
	}
	end := (minutes + a.DurationOrDefault()) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", end/60, end%60)
}

// SortByStartTime returns a new slice ordered ascending by time-of-day. The
// sort is stable: activities sharing a start time keep their relative order.
func SortByStartTime(activities []model.Activity) []model.Activity {
	out := make([]model.Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := MinutesSinceMidnight(out[i].StartTime)
		b, errB := MinutesSinceMidnight(out[j].StartTime)
		if errA != nil || errB != nil {
			return errA == nil && errB != nil
		}
		return a < b
	})
	return out
}
