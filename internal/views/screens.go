package views

import (
	"fmt"
	"strings"
)

type ScheduleItemData struct {
	Title      string
	TimeRange  string
	Badges     string
	IsNow      bool
	IsUpcoming bool
	UntilLabel string
	Selected   bool
}

type SchedulePaneData struct {
	Items       []ScheduleItemData
	CurrentTime string
	EmptyHint   string
}

// SchedulePane renders the chronological activity list with the current one
// highlighted.
func SchedulePane(data SchedulePaneData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render("Current time: "+data.CurrentTime))

	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render(data.EmptyHint))
		return b.String()
	}

	for _, item := range data.Items {
		cursor := "  "
		if item.Selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s  %s", cursor, item.TimeRange, item.Title)
		if item.Badges != "" {
			line += "  " + mutedStyle.Render(item.Badges)
		}
		switch {
		case item.IsNow:
			line = nowStyle.Render(line + "  · happening now")
		case item.IsUpcoming:
			line = upcomingStyle.Render(line + "  · " + item.UntilLabel)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type DetailPaneData struct {
	Title         string
	TimeRange     string
	Duration      string
	NotifyAtStart bool
	NotifyBefore  string
	UntilLabel    string
	Reminders     []string
}

// DetailPane renders the selected activity plus the recent reminder log.
func DetailPane(data DetailPaneData) string {
	var b strings.Builder
	if data.Title == "" {
		b.WriteString(mutedStyle.Render("No activity selected"))
	} else {
		fmt.Fprintf(&b, "%s\n%s (%s)\n", data.Title, data.TimeRange, data.Duration)
		if data.NotifyAtStart {
			b.WriteString("reminder at start\n")
		}
		if data.NotifyBefore != "" {
			fmt.Fprintf(&b, "pre-alert %s before\n", data.NotifyBefore)
		}
		if data.UntilLabel != "" {
			b.WriteString(mutedStyle.Render(data.UntilLabel))
			b.WriteString("\n")
		}
	}

	if len(data.Reminders) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Recent reminders"))
		b.WriteString("\n")
		for _, line := range data.Reminders {
			fmt.Fprintf(&b, "· %s\n", line)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

type FormData struct {
	Heading       string
	TitleInput    string
	TimeInput     string
	DurationInput string
	LeadInput     string
	NotifyAtStart bool
	Err           string
}

// FormOverlay renders the add/edit dialog.
func FormOverlay(data FormData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", data.Heading)
	fmt.Fprintf(&b, "Title         %s\n", data.TitleInput)
	fmt.Fprintf(&b, "Start time    %s\n", data.TimeInput)
	fmt.Fprintf(&b, "Duration min  %s\n", data.DurationInput)
	fmt.Fprintf(&b, "Alert before  %s\n", data.LeadInput)
	atStart := "[ ] notify at start"
	if data.NotifyAtStart {
		atStart = "[x] notify at start"
	}
	fmt.Fprintf(&b, "%s  (space toggles)\n", atStart)
	b.WriteString("\nenter saves · esc cancels")
	if data.Err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(data.Err))
	}
	return b.String()
}

const helpMarkdown = `# pland

Daily routine schedule with local reminders.

## Keys

| Key | Action |
| --- | ------ |
| up/k, down/j | move selection |
| a | add activity |
| e | edit selected |
| d | delete selected |
| C | clear the whole schedule |
| n | enable notifications |
| b | dismiss the notification banner |
| ? | toggle this help |
| q | quit |

Reminders fire at an activity's start time, plus an optional pre-alert a few
minutes earlier. Reminders are best-effort: nothing is replayed after the
fact.
`

func HelpOverlay() string {
	return RenderMarkdown(helpMarkdown)
}
