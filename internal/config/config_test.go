package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.UpcomingWindowMinutes != 60 {
		t.Fatalf("unexpected upcoming window: %d", cfg.UpcomingWindowMinutes)
	}
	if cfg.DBPath == "" {
		t.Fatal("expected a default db path")
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_path: /tmp/custom.db\ndesktop_notifications: false\nupcoming_window_minutes: 90\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
	if cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications disabled")
	}
	if cfg.UpcomingWindowMinutes != 90 {
		t.Fatalf("unexpected upcoming window: %d", cfg.UpcomingWindowMinutes)
	}
	// Unset keys keep their defaults.
	if cfg.NotifyBuffer != 16 {
		t.Fatalf("unexpected notify buffer: %d", cfg.NotifyBuffer)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for explicitly named missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PLAND_DB_PATH", "/tmp/env.db")
	t.Setenv("PLAND_DESKTOP_NOTIFICATIONS", "off")
	t.Setenv("PLAND_UPCOMING_WINDOW_MINUTES", "45")
	t.Setenv("PLAND_NOTIFY_BUFFER", "not-a-number")

	cfg := FromEnv(Default())
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
	if cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications disabled via env")
	}
	if cfg.UpcomingWindowMinutes != 45 {
		t.Fatalf("unexpected upcoming window: %d", cfg.UpcomingWindowMinutes)
	}
	if cfg.NotifyBuffer != 16 {
		t.Fatal("expected malformed env value ignored")
	}
}
