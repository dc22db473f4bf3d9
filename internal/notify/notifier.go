// Package notify turns the current activity set into armed, one-shot,
// cancellable reminder timers and delivers best-effort desktop notifications
// when they fire.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Notification is a single user-visible reminder. Tag identifies the
// (activity, kind) pair so repeat firings replace rather than stack on
// surfaces that honor it.
type Notification struct {
	Title string
	Body  string
	Tag   string
}

type Notifier interface {
	Send(Notification) error
}

// NoopNotifier swallows notifications; used when desktop delivery is off.
type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error { return nil }

// ExecNotifier shells out to the platform notifier.
type ExecNotifier struct{}

func (ExecNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", "--hint", "string:x-canonical-private-synchronous:"+n.Tag, n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Fanout delivers to every wrapped notifier; the first error wins but the
// rest are still attempted.
type Fanout []Notifier

func (f Fanout) Send(n Notification) error {
	var firstErr error
	for _, dst := range f {
		if err := dst.Send(n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Channel forwards notifications into a buffered channel without blocking;
// the TUI drains it to surface reminders in the status area. When the buffer
// is full the notification is dropped, not queued.
type Channel struct {
	C chan Notification
}

func NewChannel(buffer int) *Channel {
	if buffer <= 0 {
		buffer = 1
	}
	return &Channel{C: make(chan Notification, buffer)}
}

func (c *Channel) Send(n Notification) error {
	select {
	case c.C <- n:
	default:
	}
	return nil
}
