// Package commands wires the pland CLI: the bare `pland` invocation starts
// the interactive TUI, subcommands cover scripted use (add, list, remove,
// clear, export, import) and the headless reminder daemon (remind).
package commands

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/saurabhkm/pland/internal/config"
	"github.com/saurabhkm/pland/internal/notify"
	"github.com/saurabhkm/pland/internal/schedule"
	"github.com/saurabhkm/pland/internal/storage"
	"github.com/saurabhkm/pland/internal/update"
)

var (
	version = "dev"

	flagConfig string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "pland",
	Short: "pland - daily routine scheduler with local reminders",
	Long: `pland keeps a single daily schedule of recurring activities and fires
desktop reminders when they start. Run it without arguments for the
interactive terminal UI, or use the subcommands for scripted access.`,
	Version: version,
	RunE:    runTUI,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo stamps the build version onto the root command.
func SetVersionInfo(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to schedule database (overrides config)")
}

// loadConfig resolves the effective configuration from file, environment and
// the --db override, in that order.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

// openState opens the schedule database and loads the current schedule into a
// fresh state handle. The caller owns the returned store and must Close it.
func openState(cmd *cobra.Command, cfg config.Config) (*schedule.State, storage.Store, error) {
	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open schedule database: %w", err)
	}
	state := schedule.New(store)
	if err := state.Load(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("load schedule: %w", err)
	}
	return state, store, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, store, err := openState(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	perm := notify.NewPermission(notify.ProbeFromSetting(cfg.DesktopNotifications))

	// Reminders fan out to the desktop and to a channel the TUI drains so
	// fired reminders show up in the detail pane as well.
	inbound := notify.NewChannel(cfg.NotifyBuffer)
	engine := notify.NewEngine(notify.Fanout{notify.ExecNotifier{}, inbound}, perm)

	statePath := filepath.Join(config.StateDir(), "ui.json")
	m := update.NewModel(state, engine, perm, inbound.C, cfg, statePath)

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
