package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/timeutil"
)

var (
	addAt           string
	addDuration     int
	addNotifyStart  bool
	addNotifyBefore int
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an activity to the schedule",
	Long: `Add a recurring daily activity. The start time accepts both 24-hour
("07:00") and 12-hour ("7:00 AM") forms.

Examples:
  pland add "Morning workout" --at 7:00AM --duration 45 --notify-start
  pland add Standup --at 09:30 --notify-before 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "start time, e.g. 07:00 or 7:00AM (required)")
	addCmd.Flags().IntVar(&addDuration, "duration", 0, "duration in minutes (default 30)")
	addCmd.Flags().BoolVar(&addNotifyStart, "notify-start", false, "notify when the activity starts")
	addCmd.Flags().IntVar(&addNotifyBefore, "notify-before", 0, "notify this many minutes before the start")
	_ = addCmd.MarkFlagRequired("at")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, store, err := openState(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	start, err := timeutil.ParseTimeInput(addAt)
	if err != nil {
		return err
	}
	draft := model.Draft{
		Title:         strings.Join(args, " "),
		StartTime:     start,
		NotifyAtStart: addNotifyStart,
	}
	if cmd.Flags().Changed("duration") {
		draft.DurationMinutes = &addDuration
	}
	if cmd.Flags().Changed("notify-before") {
		draft.NotifyBefore = &addNotifyBefore
	}

	added, err := state.Add(cmd.Context(), draft)
	if err != nil {
		return err
	}
	fmt.Printf("added %q at %s (%s)\n", added.Title, timeutil.FormatDisplay(added.StartTime), added.ID)
	return nil
}
