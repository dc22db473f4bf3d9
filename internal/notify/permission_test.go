package notify

import "testing"

func TestPermissionRequestDecidesOnce(t *testing.T) {
	calls := 0
	perm := NewPermission(func() PermissionStatus {
		calls++
		return PermissionGranted
	})

	if perm.Status() != PermissionDefault {
		t.Fatalf("expected undecided initial status, got %q", perm.Status())
	}
	if got := perm.Request(); got != PermissionGranted {
		t.Fatalf("expected granted, got %q", got)
	}
	if got := perm.Request(); got != PermissionGranted {
		t.Fatalf("expected recorded decision, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("expected probe consulted once, got %d calls", calls)
	}
}

func TestPermissionUndecidedProbeKeepsAsking(t *testing.T) {
	status := PermissionDefault
	perm := NewPermission(func() PermissionStatus { return status })

	if got := perm.Request(); got != PermissionDefault {
		t.Fatalf("expected still undecided, got %q", got)
	}
	status = PermissionDenied
	if got := perm.Request(); got != PermissionDenied {
		t.Fatalf("expected denied, got %q", got)
	}
}

func TestProbeFromSetting(t *testing.T) {
	if ProbeFromSetting(true)() != PermissionGranted {
		t.Fatal("expected enabled setting to grant")
	}
	if ProbeFromSetting(false)() != PermissionDenied {
		t.Fatal("expected disabled setting to deny")
	}
}

func TestFanoutAndChannelNotifiers(t *testing.T) {
	ch := NewChannel(1)
	sink := &recordingNotifier{}
	fan := Fanout{sink, ch}

	n := Notification{Title: "Workout", Tag: "activity-1-start"}
	if err := fan.Send(n); err != nil {
		t.Fatalf("fanout send: %v", err)
	}
	if sink.count() != 1 {
		t.Fatal("expected recording notifier reached")
	}
	select {
	case got := <-ch.C:
		if got.Tag != n.Tag {
			t.Fatalf("unexpected forwarded notification: %#v", got)
		}
	default:
		t.Fatal("expected notification forwarded to channel")
	}

	// Full buffer drops rather than blocks.
	if err := ch.Send(n); err != nil {
		t.Fatalf("channel send: %v", err)
	}
	if err := ch.Send(n); err != nil {
		t.Fatalf("channel send with full buffer: %v", err)
	}
}
