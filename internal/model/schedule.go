package model

import "time"

// ScheduleKey is the fixed key of the single persisted schedule document.
// Exactly one schedule exists per installation.
const ScheduleKey = "default"

// Schedule is the persisted unit: the full ordered activity list plus the
// instant of the last successful save. It is always replaced wholesale, never
// diffed.
type Schedule struct {
	Activities   []Activity
	LastModified time.Time
}

func (s Schedule) Validate() error {
	seen := make(map[string]bool, len(s.Activities))
	for _, a := range s.Activities {
		if err := a.Validate(); err != nil {
			return err
		}
		if seen[a.ID] {
			return ErrDuplicateActivityID
		}
		seen[a.ID] = true
	}
	return nil
}
