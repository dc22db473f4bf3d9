package commands

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saurabhkm/pland/internal/notify"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder daemon without the UI",
	Long: `Arm reminder timers for the current schedule and keep delivering desktop
notifications until interrupted. Timers are re-armed at midnight so every
activity fires again the next day.

Intended to be run from a user service manager, e.g. a systemd user unit.`,
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
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
	if perm.Request() != notify.PermissionGranted {
		return fmt.Errorf("desktop notifications are disabled in config, nothing to do")
	}
	engine := notify.NewEngine(notify.ExecNotifier{}, perm)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens := engine.ScheduleAll(state.Activities(), time.Now())
	defer func() { engine.CancelOnTeardown(tokens) }()
	log.Printf("[remind] armed %d activities", len(tokens))

	for {
		select {
		case <-ctx.Done():
			log.Printf("[remind] shutting down")
			return nil
		case now := <-time.After(untilNextMidnight(time.Now())):
			// Reload in case another pland process changed the schedule
			// during the day, then arm the new day's timers.
			if err := state.Load(ctx); err != nil {
				log.Printf("[remind] reload schedule: %v", err)
			}
			tokens = engine.Reschedule(state.Activities(), tokens, now)
			log.Printf("[remind] re-armed %d activities", len(tokens))
		}
	}
}

// untilNextMidnight returns the duration until the next local midnight, with
// a small slack so the rollover lands inside the new day.
func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now) + time.Second
}
