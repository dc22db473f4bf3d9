package notify

import "sync"

type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
	PermissionDefault PermissionStatus = "default"
)

// Permission tracks whether the user has allowed reminder display. The first
// Request consults the probe and records its decision; later calls return the
// recorded decision without probing again.
type Permission struct {
	mu     sync.Mutex
	status PermissionStatus
	probe  func() PermissionStatus
}

func NewPermission(probe func() PermissionStatus) *Permission {
	if probe == nil {
		probe = func() PermissionStatus { return PermissionDenied }
	}
	return &Permission{status: PermissionDefault, probe: probe}
}

// StaticPermission is a pre-decided permission, handy for headless commands
// and tests.
func StaticPermission(status PermissionStatus) *Permission {
	return &Permission{status: status, probe: func() PermissionStatus { return status }}
}

func (p *Permission) Status() PermissionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Permission) Request() PermissionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != PermissionDefault {
		return p.status
	}
	decided := p.probe()
	if decided != PermissionGranted && decided != PermissionDenied {
		// Probe stayed undecided; keep asking on later requests.
		return PermissionDefault
	}
	p.status = decided
	return p.status
}

// ProbeFromSetting maps the desktop-notifications config flag onto a
// permission decision.
func ProbeFromSetting(enabled bool) func() PermissionStatus {
	return func() PermissionStatus {
		if enabled {
			return PermissionGranted
		}
		return PermissionDenied
	}
}
