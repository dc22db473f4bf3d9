package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saurabhkm/pland/internal/model"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id-or-title>",
	Short: "Remove an activity from the schedule",
	Long: `Remove one activity, identified by its id (or an unambiguous id prefix)
or by its exact title.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, store, err := openState(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	target, err := resolveActivity(state.Activities(), args[0])
	if err != nil {
		return err
	}
	if err := state.Remove(cmd.Context(), target.ID); err != nil {
		return err
	}
	fmt.Printf("removed %q\n", target.Title)
	return nil
}

// resolveActivity matches the argument against ids, id prefixes and exact
// titles. Ambiguous prefixes are an error rather than a guess.
func resolveActivity(activities []model.Activity, arg string) (model.Activity, error) {
	var matches []model.Activity
	for _, a := range activities {
		if a.ID == arg || a.Title == arg {
			return a, nil
		}
		if strings.HasPrefix(a.ID, arg) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Activity{}, fmt.Errorf("no activity matches %q", arg)
	default:
		return model.Activity{}, fmt.Errorf("%q matches %d activities, use more of the id", arg, len(matches))
	}
}
