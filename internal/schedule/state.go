// Package schedule keeps the in-memory activity list synchronized with the
// durable store. Every mutation sorts the new list, persists it wholesale,
// and only then commits it in memory, so the UI never reports state that was
// not durably written.
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/storage"
	"github.com/saurabhkm/pland/internal/timeutil"
)

// State is the single source of truth the notification engine consumes. It
// is not safe for concurrent use: mutations arrive from one logical actor
// (the UI or a CLI command) one at a time.
type State struct {
	store        storage.Store
	clock        func() time.Time
	onChange     func([]model.Activity)
	activities   []model.Activity
	lastModified time.Time
	loaded       bool
}

type Option func(*State)

func WithClock(clock func() time.Time) Option {
	return func(s *State) { s.clock = clock }
}

// WithChangeListener registers a callback invoked with the post-mutation
// snapshot after every successful persistence; the app wires it to the
// notification engine's rearm.
func WithChangeListener(fn func([]model.Activity)) Option {
	return func(s *State) { s.onChange = fn }
}

func New(store storage.Store, opts ...Option) *State {
	s := &State{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rebuilds the in-memory list from the store. A store with no document
// yet yields an empty schedule, not an error.
func (s *State) Load(ctx context.Context) error {
	sched, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.activities = nil
			s.lastModified = time.Time{}
			s.loaded = true
			return nil
		}
		return err
	}
	s.activities = timeutil.SortByStartTime(sched.Activities)
	s.lastModified = sched.LastModified
	s.loaded = true
	return nil
}

// Activities returns a copy of the current sorted list.
func (s *State) Activities() []model.Activity {
	out := make([]model.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

func (s *State) LastModified() time.Time {
	return s.lastModified
}

func (s *State) Loaded() bool {
	return s.loaded
}

// Find returns the activity with the given ID, if present.
func (s *State) Find(id string) (model.Activity, bool) {
	for _, a := range s.activities {
		if a.ID == id {
			return a, true
		}
	}
	return model.Activity{}, false
}

// Add validates the draft, assigns a fresh ID and timestamps, and persists
// the grown list.
func (s *State) Add(ctx context.Context, draft model.Draft) (model.Activity, error) {
	if err := draft.Validate(); err != nil {
		return model.Activity{}, err
	}
	now := s.clock()
	activity := model.Activity{
		ID:              uuid.NewString(),
		Title:           draft.Title,
		StartTime:       draft.StartTime,
		DurationMinutes: draft.DurationMinutes,
		NotifyAtStart:   draft.NotifyAtStart,
		NotifyBefore:    draft.NotifyBefore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	next := timeutil.SortByStartTime(append(s.Activities(), activity))
	if err := s.commit(ctx, next, now); err != nil {
		return model.Activity{}, err
	}
	return activity, nil
}

// Update applies a partial patch to one activity. UpdatedAt is refreshed;
// CreatedAt is left untouched.
func (s *State) Update(ctx context.Context, id string, patch model.Patch) (model.Activity, error) {
	current, ok := s.Find(id)
	if !ok {
		return model.Activity{}, storage.ErrNotFound
	}
	now := s.clock()
	updated := patch.Apply(current)
	updated.UpdatedAt = now
	if err := updated.Validate(); err != nil {
		return model.Activity{}, err
	}

	next := s.Activities()
	for i := range next {
		if next[i].ID == id {
			next[i] = updated
			break
		}
	}
	next = timeutil.SortByStartTime(next)
	if err := s.commit(ctx, next, now); err != nil {
		return model.Activity{}, err
	}
	return updated, nil
}

// Remove drops the matching activity; removing an absent ID is a no-op.
func (s *State) Remove(ctx context.Context, id string) error {
	if _, ok := s.Find(id); !ok {
		return nil
	}
	next := make([]model.Activity, 0, len(s.activities)-1)
	for _, a := range s.activities {
		if a.ID != id {
			next = append(next, a)
		}
	}
	return s.commit(ctx, next, s.clock())
}

// Clear replaces the list with empty.
func (s *State) Clear(ctx context.Context) error {
	return s.commit(ctx, nil, s.clock())
}

// commit persists the candidate list and, only on success, makes it the
// in-memory truth and notifies the change listener. A failed write leaves
// memory unchanged so the caller can surface the error honestly.
func (s *State) commit(ctx context.Context, next []model.Activity, now time.Time) error {
	if err := s.store.Save(ctx, model.Schedule{Activities: next, LastModified: now}); err != nil {
		return err
	}
	s.activities = next
	s.lastModified = now
	if s.onChange != nil {
		s.onChange(s.Activities())
	}
	return nil
}
