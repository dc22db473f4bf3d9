package notify

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/timeutil"
)

// Kind distinguishes the two reminder firings an activity can carry.
type Kind string

const (
	KindStart    Kind = "start"
	KindPreAlert Kind = "prealert"
)

type tokenState int

const (
	tokenArmed tokenState = iota
	tokenFired
	tokenCancelled
)

// Token is the cancellation capability for one armed reminder timer. A token
// is terminal once fired or cancelled; rescheduling always mints fresh ones.
type Token struct {
	ActivityID string
	Kind       Kind
	FireAt     time.Time

	mu    sync.Mutex
	state tokenState
	stop  func() bool
}

// Cancel stops the underlying timer. Cancelling an already-fired or
// already-cancelled token is a no-op.
func (t *Token) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != tokenArmed {
		return
	}
	t.state = tokenCancelled
	if t.stop != nil {
		t.stop()
	}
}

// beginFire transitions an armed token to fired; the timer callback bails out
// when it loses the race against Cancel.
func (t *Token) beginFire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != tokenArmed {
		return false
	}
	t.state = tokenFired
	return true
}

func (t *Token) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == tokenArmed
}

func (t *Token) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == tokenCancelled
}

// TokenMap holds the outstanding tokens per activity ID. Activities with no
// armed reminders have no entry.
type TokenMap map[string][]*Token

// ArmFunc schedules fn to run once after d and returns a stop function. The
// production implementation is time.AfterFunc; tests swap in a recorder.
type ArmFunc func(d time.Duration, fn func()) (stop func() bool)

// Engine derives reminder timers from activity snapshots. It owns no durable
// state; everything it arms can be torn down and recomputed from the current
// activity list at any time.
type Engine struct {
	notifier Notifier
	perm     *Permission
	clock    func() time.Time
	arm      ArmFunc
	logf     func(format string, args ...any)
}

type EngineOption func(*Engine)

func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

func WithArmFunc(arm ArmFunc) EngineOption {
	return func(e *Engine) { e.arm = arm }
}

func WithLogger(logf func(format string, args ...any)) EngineOption {
	return func(e *Engine) { e.logf = logf }
}

func NewEngine(notifier Notifier, perm *Permission, opts ...EngineOption) *Engine {
	e := &Engine{
		notifier: notifier,
		perm:     perm,
		clock:    time.Now,
		logf:     log.Printf,
	}
	e.arm = func(d time.Duration, fn func()) func() bool {
		return time.AfterFunc(d, fn).Stop
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notifier == nil {
		e.notifier = NoopNotifier{}
	}
	return e
}

// Now returns the engine's current instant via its injected clock.
func (e *Engine) Now() time.Time {
	return e.clock()
}

// ScheduleActivity arms up to two one-shot timers for the activity: the start
// reminder and the pre-alert. The target is the next occurrence of the start
// time, rolling to tomorrow when today's slot has passed. Without granted
// permission nothing is armed and nil is returned; that is a valid outcome,
// not an error. A pre-alert whose instant is already behind now is silently
// skipped.
func (e *Engine) ScheduleActivity(a model.Activity, now time.Time) []*Token {
	if e.perm.Status() != PermissionGranted {
		return nil
	}

	target, err := timeutil.NextOccurrence(a.StartTime, now)
	if err != nil {
		e.logf("[notify] skip %s: %v", a.ID, err)
		return nil
	}

	tokens := make([]*Token, 0, 2)
	if a.NotifyAtStart && target.After(now) {
		tokens = append(tokens, e.armToken(a.ID, KindStart, target, now, Notification{
			Title: a.Title,
			Body:  fmt.Sprintf("Time for: %s", a.Title),
			Tag:   fmt.Sprintf("activity-%s-start", a.ID),
		}))
	}
	if a.NotifyBefore != nil && *a.NotifyBefore > 0 {
		preAlert := target.Add(-time.Duration(*a.NotifyBefore) * time.Minute)
		if preAlert.After(now) {
			tokens = append(tokens, e.armToken(a.ID, KindPreAlert, preAlert, now, Notification{
				Title: fmt.Sprintf("Upcoming: %s", a.Title),
				Body:  fmt.Sprintf("Starts in %d minutes", *a.NotifyBefore),
				Tag:   fmt.Sprintf("activity-%s-prealert", a.ID),
			}))
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func (e *Engine) armToken(activityID string, kind Kind, fireAt, now time.Time, n Notification) *Token {
	token := &Token{ActivityID: activityID, Kind: kind, FireAt: fireAt}
	token.stop = e.arm(fireAt.Sub(now), func() {
		if !token.beginFire() {
			return
		}
		// A failed display must not disturb sibling timers.
		if err := e.notifier.Send(n); err != nil {
			e.logf("[notify] display %s: %v", n.Tag, err)
		}
	})
	return token
}

// ScheduleAll arms every activity in the snapshot. Activities yielding no
// tokens get no map entry.
func (e *Engine) ScheduleAll(activities []model.Activity, now time.Time) TokenMap {
	out := make(TokenMap)
	for _, a := range activities {
		if tokens := e.ScheduleActivity(a, now); len(tokens) > 0 {
			out[a.ID] = tokens
		}
	}
	return out
}

// CancelAll cancels every outstanding token and clears the map in place.
// Safe on an empty or already-cancelled map.
func (e *Engine) CancelAll(m TokenMap) {
	for id, tokens := range m {
		for _, token := range tokens {
			token.Cancel()
		}
		delete(m, id)
	}
}

// Reschedule is the only rearm path: it tears down the previous generation
// completely, then arms a fresh one from the snapshot. No incremental
// diffing; activity edits are rare and full recompute cannot drift from the
// persisted state.
func (e *Engine) Reschedule(activities []model.Activity, existing TokenMap, now time.Time) TokenMap {
	e.CancelAll(existing)
	return e.ScheduleAll(activities, now)
}

// CancelOnTeardown releases all timers when the hosting process stops
// observing; identical contract to CancelAll.
func (e *Engine) CancelOnTeardown(m TokenMap) {
	e.CancelAll(m)
}
