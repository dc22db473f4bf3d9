package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/timeutil"
	"github.com/saurabhkm/pland/internal/views"
)

const (
	fieldTitle = iota
	fieldTime
	fieldDuration
	fieldLead
	fieldCount
)

type formState struct {
	editingID     string // empty when adding
	inputs        [fieldCount]textinput.Model
	notifyAtStart bool
	focus         int
	err           string
}

func newForm(editing *model.Activity) *formState {
	f := &formState{}

	title := textinput.New()
	title.Placeholder = "Morning run"
	title.CharLimit = 80
	f.inputs[fieldTitle] = title

	start := textinput.New()
	start.Placeholder = "07:00 or 7:00 AM"
	start.CharLimit = 8
	f.inputs[fieldTime] = start

	duration := textinput.New()
	duration.Placeholder = strconv.Itoa(model.DefaultDurationMinutes)
	duration.CharLimit = 4
	f.inputs[fieldDuration] = duration

	lead := textinput.New()
	lead.Placeholder = "none"
	lead.CharLimit = 4
	f.inputs[fieldLead] = lead

	if editing != nil {
		f.editingID = editing.ID
		f.inputs[fieldTitle].SetValue(editing.Title)
		f.inputs[fieldTime].SetValue(editing.StartTime)
		if editing.DurationMinutes != nil {
			f.inputs[fieldDuration].SetValue(strconv.Itoa(*editing.DurationMinutes))
		}
		if editing.NotifyBefore != nil {
			f.inputs[fieldLead].SetValue(strconv.Itoa(*editing.NotifyBefore))
		}
		f.notifyAtStart = editing.NotifyAtStart
	}

	f.inputs[fieldTitle].Focus()
	return f
}

func (f *formState) focusField(index int) {
	f.focus = index
	for i := range f.inputs {
		if i == index {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// draft builds the validated draft from the form fields. Optional fields left
// blank stay absent.
func (f *formState) draft() (model.Draft, error) {
	start, err := timeutil.ParseTimeInput(f.inputs[fieldTime].Value())
	if err != nil {
		return model.Draft{}, err
	}
	draft := model.Draft{
		Title:         strings.TrimSpace(f.inputs[fieldTitle].Value()),
		StartTime:     start,
		NotifyAtStart: f.notifyAtStart,
	}
	if draft.DurationMinutes, err = optionalMinutes(f.inputs[fieldDuration].Value()); err != nil {
		return model.Draft{}, err
	}
	if draft.NotifyBefore, err = optionalMinutes(f.inputs[fieldLead].Value()); err != nil {
		return model.Draft{}, err
	}
	if err := draft.Validate(); err != nil {
		return model.Draft{}, err
	}
	return draft, nil
}

// patch maps the form onto a partial update; blank optional fields clear.
func (f *formState) patch() (model.Patch, error) {
	draft, err := f.draft()
	if err != nil {
		return model.Patch{}, err
	}
	patch := model.Patch{
		Title:         &draft.Title,
		StartTime:     &draft.StartTime,
		NotifyAtStart: &draft.NotifyAtStart,
	}
	if draft.DurationMinutes != nil {
		patch.DurationMinutes = draft.DurationMinutes
	} else {
		patch.ClearDuration = true
	}
	if draft.NotifyBefore != nil {
		patch.NotifyBefore = draft.NotifyBefore
	} else {
		patch.ClearNotifyBefore = true
	}
	return patch, nil
}

func optionalMinutes(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("model: %q is not a positive number of minutes", raw)
	}
	return &v, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		f.focusField((f.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		f.focusField((f.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case " ":
		f.notifyAtStart = !f.notifyAtStart
		return m, nil
	case "enter":
		return m.submitForm()
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	f := m.form
	if f.editingID == "" {
		draft, err := f.draft()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		added, err := m.state.Add(context.Background(), draft)
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.rearm()
		m.Status = StatusBar{Text: fmt.Sprintf("added %q", added.Title)}
		return m, nil
	}

	patch, err := f.patch()
	if err != nil {
		f.err = err.Error()
		return m, nil
	}
	updated, err := m.state.Update(context.Background(), f.editingID, patch)
	if err != nil {
		f.err = err.Error()
		return m, nil
	}
	m.form = nil
	m.rearm()
	m.Status = StatusBar{Text: fmt.Sprintf("updated %q", updated.Title)}
	return m, nil
}

func (f *formState) viewData() views.FormData {
	heading := "Add activity"
	if f.editingID != "" {
		heading = "Edit activity"
	}
	return views.FormData{
		Heading:       heading,
		TitleInput:    f.inputs[fieldTitle].View(),
		TimeInput:     f.inputs[fieldTime].View(),
		DurationInput: f.inputs[fieldDuration].View(),
		LeadInput:     f.inputs[fieldLead].View(),
		NotifyAtStart: f.notifyAtStart,
		Err:           f.err,
	}
}
