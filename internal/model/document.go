package model

import "time"

// Document is the schedule's interchange shape, used by export/import.
// Instants are epoch milliseconds.
type Document struct {
	ID           string             `json:"id"`
	Activities   []ActivityDocument `json:"activities"`
	LastModified int64              `json:"lastModified"`
}

type ActivityDocument struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	StartTime     string `json:"startTime"`
	Duration      *int   `json:"duration,omitempty"`
	NotifyAtStart bool   `json:"notifyAtStart"`
	NotifyBefore  *int   `json:"notifyBefore,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
}

func (s Schedule) Document() Document {
	doc := Document{
		ID:           ScheduleKey,
		Activities:   make([]ActivityDocument, 0, len(s.Activities)),
		LastModified: s.LastModified.UnixMilli(),
	}
	for _, a := range s.Activities {
		doc.Activities = append(doc.Activities, ActivityDocument{
			ID:            a.ID,
			Title:         a.Title,
			StartTime:     a.StartTime,
			Duration:      copyInt(a.DurationMinutes),
			NotifyAtStart: a.NotifyAtStart,
			NotifyBefore:  copyInt(a.NotifyBefore),
			CreatedAt:     a.CreatedAt.UnixMilli(),
			UpdatedAt:     a.UpdatedAt.UnixMilli(),
		})
	}
	return doc
}

func (d Document) Schedule() Schedule {
	s := Schedule{
		Activities:   make([]Activity, 0, len(d.Activities)),
		LastModified: time.UnixMilli(d.LastModified),
	}
	for _, a := range d.Activities {
		s.Activities = append(s.Activities, Activity{
			ID:              a.ID,
			Title:           a.Title,
			StartTime:       a.StartTime,
			DurationMinutes: copyInt(a.Duration),
			NotifyAtStart:   a.NotifyAtStart,
			NotifyBefore:    copyInt(a.NotifyBefore),
			CreatedAt:       time.UnixMilli(a.CreatedAt),
			UpdatedAt:       time.UnixMilli(a.UpdatedAt),
		})
	}
	return s
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
