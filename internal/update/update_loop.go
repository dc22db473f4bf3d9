package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saurabhkm/pland/internal/notify"
	"github.com/saurabhkm/pland/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForReminderCmd(m.inbound))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.form != nil {
			return m.handleFormKey(typed)
		}
		return m.handleKey(typed)

	case tickMsg:
		m.now = time.Time(typed)
		return m, tickCmd()

	case reminderMsg:
		m.recordReminder(notify.Notification(typed))
		return m, waitForReminderCmd(m.inbound)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.activities)-1 {
			m.cursor++
		}
	case "a":
		m.form = newForm(nil)
	case "e":
		if current, ok := m.selected(); ok {
			m.form = newForm(&current)
		}
	case "d":
		m.deleteSelected()
	case "C":
		m.clearAll()
	case "n":
		m.requestPermission()
	case "b":
		m.dismissBanner()
	case "?":
		m.HelpVisible = !m.HelpVisible
	case "ctrl+c", "q":
		m.Quitting = true
		// No timer may outlive the UI that would report its firing.
		m.engine.CancelOnTeardown(m.tokens)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	data := views.AppData{
		Header:     fmt.Sprintf("pland · %d activities", len(m.activities)),
		StatusLine: statusLine(m.Status),
		Footer:     "a add · e edit · d delete · ? help · q quit",
	}
	if m.bannerVisible() {
		data.Banner = "Enable notifications to get reminders at activity start. Press n to enable, b to dismiss."
	}
	switch {
	case m.HelpVisible:
		data.Overlay = views.HelpOverlay()
	case m.form != nil:
		data.Overlay = views.FormOverlay(m.form.viewData())
	default:
		data.LeftPane = views.SchedulePane(m.schedulePaneData())
		data.RightPane = views.DetailPane(m.detailPaneData())
	}
	return views.RenderApp(data)
}

func statusLine(s StatusBar) string {
	if s.Text == "" {
		return ""
	}
	if s.IsError {
		return "error: " + s.Text
	}
	return s.Text
}
