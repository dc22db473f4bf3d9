package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the runtime knobs. Precedence: defaults, then the YAML file,
// then PLAND_* environment variables.
type Config struct {
	DBPath                 string `yaml:"db_path"`
	DesktopNotifications   bool   `yaml:"desktop_notifications"`
	UpcomingWindowMinutes  int    `yaml:"upcoming_window_minutes"`
	NotifyBuffer           int    `yaml:"notify_buffer"`
}

func Default() Config {
	return Config{
		DBPath:                 defaultDBPath(),
		DesktopNotifications:   true,
		UpcomingWindowMinutes:  60,
		NotifyBuffer:           16,
	}
}

// Load reads the YAML file at path (or the default location when path is
// empty) over the defaults, then applies environment overrides. A missing
// file is fine; a malformed one is not.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is the common case.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return FromEnv(cfg), nil
}

// FromEnv overlays PLAND_* environment variables onto base.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("PLAND_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvBool("PLAND_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("PLAND_UPCOMING_WINDOW_MINUTES"); ok && v > 0 {
		cfg.UpcomingWindowMinutes = v
	}
	if v, ok := getEnvInt("PLAND_NOTIFY_BUFFER"); ok && v > 0 {
		cfg.NotifyBuffer = v
	}
	return cfg
}

// DefaultPath is where Load looks for the YAML file when none is given.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// StateDir holds small UI state files (for example the dismissed permission
// banner flag).
func StateDir() string {
	return configDir()
}

func defaultDBPath() string {
	return filepath.Join(configDir(), "pland.db")
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "pland")
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
