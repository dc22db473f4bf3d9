package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/timeutil"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	faint  = color.New(color.Faint)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the day's schedule",
	Long: `List all activities in start-time order. Activities happening right now
are marked in green, activities starting within the upcoming window in
yellow.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, store, err := openState(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	activities := state.Activities()
	if len(activities) == 0 {
		fmt.Println("No activities scheduled.")
		fmt.Println()
		fmt.Println("Run 'pland add' to create one.")
		return nil
	}

	now := time.Now()
	window := time.Duration(cfg.UpcomingWindowMinutes) * time.Minute
	for _, a := range activities {
		fmt.Println(listLine(a, now, window))
	}
	return nil
}

// listLine renders one schedule row: start time, title, and a status marker
// for activities that are in progress or coming up.
func listLine(a model.Activity, now time.Time, window time.Duration) string {
	span := fmt.Sprintf("%s – %s",
		timeutil.FormatDisplay(a.StartTime),
		timeutil.FormatDisplay(timeutil.EndClock(a)))
	line := fmt.Sprintf("%s %-22s %s", faint.Sprintf("%.8s", a.ID), span, a.Title)
	switch {
	case timeutil.IsNowWithin(a, now):
		return green.Sprintf("%s  · happening now", line)
	case timeutil.IsUpcomingWithin(a, now, window):
		return yellow.Sprintf("%s  · %s", line, timeutil.TimeUntilLabel(a.StartTime, now))
	default:
		return line
	}
}
