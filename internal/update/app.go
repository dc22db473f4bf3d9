// Package update hosts the Bubble Tea program: it renders the schedule,
// routes key input into schedule-state mutations, and rearms the
// notification engine after every change.
package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saurabhkm/pland/internal/config"
	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/notify"
	"github.com/saurabhkm/pland/internal/schedule"
	"github.com/saurabhkm/pland/internal/timeutil"
	"github.com/saurabhkm/pland/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Model struct {
	state   *schedule.State
	engine  *notify.Engine
	perm    *notify.Permission
	tokens  notify.TokenMap
	inbound <-chan notify.Notification
	cfg     config.Config

	activities []model.Activity
	cursor     int
	now        time.Time

	form            *formState
	reminderLog     []notify.Notification
	bannerDismissed bool
	statePath       string

	Status      StatusBar
	HelpVisible bool
	Quitting    bool
}

type tickMsg time.Time

type reminderMsg notify.Notification

// NewModel assumes state has already been loaded. inbound carries fired
// reminders back into the UI; statePath points at the small JSON file that
// remembers banner dismissal.
func NewModel(state *schedule.State, engine *notify.Engine, perm *notify.Permission, inbound <-chan notify.Notification, cfg config.Config, statePath string) Model {
	m := Model{
		state:      state,
		engine:     engine,
		perm:       perm,
		tokens:     make(notify.TokenMap),
		inbound:    inbound,
		cfg:        cfg,
		activities: state.Activities(),
		now:        engine.Now(),
		statePath:  statePath,
	}
	if ui, err := loadUIState(statePath); err == nil {
		m.bannerDismissed = ui.BannerDismissed
	}
	if perm.Status() == notify.PermissionGranted {
		m.tokens = engine.ScheduleAll(m.activities, m.now)
	}
	return m
}

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(at time.Time) tea.Msg { return tickMsg(at) })
}

func waitForReminderCmd(ch <-chan notify.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return reminderMsg(<-ch)
	}
}

// rearm tears down the previous timer generation and arms a fresh one from
// the post-mutation snapshot.
func (m *Model) rearm() {
	m.activities = m.state.Activities()
	m.tokens = m.engine.Reschedule(m.activities, m.tokens, m.engine.Now())
	if m.cursor >= len(m.activities) {
		m.cursor = len(m.activities) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (model.Activity, bool) {
	if len(m.activities) == 0 || m.cursor < 0 || m.cursor >= len(m.activities) {
		return model.Activity{}, false
	}
	return m.activities[m.cursor], true
}

func (m Model) bannerVisible() bool {
	return m.perm.Status() == notify.PermissionDefault && !m.bannerDismissed
}

func (m *Model) dismissBanner() {
	m.bannerDismissed = true
	if err := saveUIState(m.statePath, uiState{BannerDismissed: true}); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("save ui state: %v", err), IsError: true}
	}
}

func (m *Model) requestPermission() {
	switch m.perm.Request() {
	case notify.PermissionGranted:
		m.bannerDismissed = true
		m.rearm()
		m.Status = StatusBar{Text: "notifications enabled"}
	case notify.PermissionDenied:
		m.Status = StatusBar{Text: "notifications are disabled in config"}
	default:
		m.Status = StatusBar{Text: "notification permission undecided"}
	}
}

func (m *Model) deleteSelected() {
	current, ok := m.selected()
	if !ok {
		return
	}
	if err := m.state.Remove(context.Background(), current.ID); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("delete: %v", err), IsError: true}
		return
	}
	m.rearm()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted %q", current.Title)}
}

func (m *Model) clearAll() {
	if err := m.state.Clear(context.Background()); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("clear: %v", err), IsError: true}
		return
	}
	m.rearm()
	m.Status = StatusBar{Text: "schedule cleared"}
}

func (m *Model) recordReminder(n notify.Notification) {
	m.reminderLog = append(m.reminderLog, n)
	if len(m.reminderLog) > 5 {
		m.reminderLog = m.reminderLog[len(m.reminderLog)-5:]
	}
	m.Status = StatusBar{Text: n.Title}
}

func (m Model) schedulePaneData() views.SchedulePaneData {
	window := time.Duration(m.cfg.UpcomingWindowMinutes) * time.Minute
	data := views.SchedulePaneData{
		CurrentTime: timeutil.FormatDisplay(timeutil.CurrentClock(m.now)),
		EmptyHint:   "No activities yet. Press a to add one.",
	}
	for i, a := range m.activities {
		badges := ""
		if a.NotifyAtStart {
			badges += "⏰"
		}
		if a.NotifyBefore != nil {
			badges += fmt.Sprintf(" %dm before", *a.NotifyBefore)
		}
		data.Items = append(data.Items, views.ScheduleItemData{
			Title:      a.Title,
			TimeRange:  fmt.Sprintf("%s – %s", timeutil.FormatDisplay(a.StartTime), timeutil.FormatDisplay(timeutil.EndClock(a))),
			Badges:     badges,
			IsNow:      timeutil.IsNowWithin(a, m.now),
			IsUpcoming: timeutil.IsUpcomingWithin(a, m.now, window),
			UntilLabel: timeutil.TimeUntilLabel(a.StartTime, m.now),
			Selected:   i == m.cursor,
		})
	}
	return data
}

func (m Model) detailPaneData() views.DetailPaneData {
	data := views.DetailPaneData{}
	if current, ok := m.selected(); ok {
		data.Title = current.Title
		data.TimeRange = fmt.Sprintf("%s – %s", timeutil.FormatDisplay(current.StartTime), timeutil.FormatDisplay(timeutil.EndClock(current)))
		data.Duration = fmt.Sprintf("%dm", current.DurationOrDefault())
		data.NotifyAtStart = current.NotifyAtStart
		if current.NotifyBefore != nil {
			data.NotifyBefore = fmt.Sprintf("%dm", *current.NotifyBefore)
		}
		if !timeutil.IsNowWithin(current, m.now) {
			data.UntilLabel = timeutil.TimeUntilLabel(current.StartTime, m.now)
		}
	}
	for _, n := range m.reminderLog {
		data.Reminders = append(data.Reminders, n.Title)
	}
	return data
}
