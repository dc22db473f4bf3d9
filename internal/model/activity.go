package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClock    = errors.New("model: invalid HH:mm time")
	ErrInvalidDuration = errors.New("model: duration must be a positive number of minutes")
	ErrInvalidLead     = errors.New("model: notify-before must be a positive number of minutes")

	ErrDuplicateActivityID = errors.New("model: duplicate activity id")
)

// DefaultDurationMinutes is assumed wherever an end time is needed and the
// activity does not carry an explicit duration.
const DefaultDurationMinutes = 30

// Activity is one scheduled occurrence within a day. StartTime is a
// time-of-day in the device's local zone, not an absolute instant; it recurs
// every calendar day.
type Activity struct {
	ID              string
	Title           string
	StartTime       string // "HH:mm", 24-hour, zero-padded
	DurationMinutes *int
	NotifyAtStart   bool
	NotifyBefore    *int // minutes before StartTime, nil when no pre-alert
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: activity id is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("model: activity title is required")
	}
	if _, _, err := ParseClock(a.StartTime); err != nil {
		return err
	}
	if a.DurationMinutes != nil && *a.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if a.NotifyBefore != nil && *a.NotifyBefore <= 0 {
		return ErrInvalidLead
	}
	if a.CreatedAt.IsZero() {
		return errors.New("model: activity created_at is required")
	}
	if a.UpdatedAt.IsZero() {
		return errors.New("model: activity updated_at is required")
	}
	return nil
}

// DurationOrDefault returns the explicit duration, or DefaultDurationMinutes.
func (a Activity) DurationOrDefault() int {
	if a.DurationMinutes != nil {
		return *a.DurationMinutes
	}
	return DefaultDurationMinutes
}

// Draft is the caller-supplied shape of a new activity, before an ID and
// timestamps are assigned.
type Draft struct {
	Title           string
	StartTime       string
	DurationMinutes *int
	NotifyAtStart   bool
	NotifyBefore    *int
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("model: activity title is required")
	}
	if _, _, err := ParseClock(d.StartTime); err != nil {
		return err
	}
	if d.DurationMinutes != nil && *d.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if d.NotifyBefore != nil && *d.NotifyBefore <= 0 {
		return ErrInvalidLead
	}
	return nil
}

// Patch carries partial updates to an existing activity. Nil fields are left
// unchanged; the Clear flags drop the corresponding optional field.
type Patch struct {
	Title             *string
	StartTime         *string
	DurationMinutes   *int
	NotifyAtStart     *bool
	NotifyBefore      *int
	ClearDuration     bool
	ClearNotifyBefore bool
}

// Apply returns a copy of the activity with the patch folded in. It does not
// touch UpdatedAt; that is the schedule state's job.
func (p Patch) Apply(a Activity) Activity {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.StartTime != nil {
		a.StartTime = *p.StartTime
	}
	if p.ClearDuration {
		a.DurationMinutes = nil
	} else if p.DurationMinutes != nil {
		v := *p.DurationMinutes
		a.DurationMinutes = &v
	}
	if p.NotifyAtStart != nil {
		a.NotifyAtStart = *p.NotifyAtStart
	}
	if p.ClearNotifyBefore {
		a.NotifyBefore = nil
	} else if p.NotifyBefore != nil {
		v := *p.NotifyBefore
		a.NotifyBefore = &v
	}
	return a
}

// ParseClock splits a zero-padded 24-hour "HH:mm" string into its hour and
// minute components.
func ParseClock(clock string) (hour, minute int, err error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	hour, err = strconv.Atoi(clock[:2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	minute, err = strconv.Atoi(clock[3:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return hour, minute, nil
}
