package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every activity from the schedule",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, store, err := openState(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	count := len(state.Activities())
	if count == 0 {
		fmt.Println("Schedule is already empty.")
		return nil
	}

	if !clearYes {
		fmt.Printf("Remove all %d activities? [y/N] ", count)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := state.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("removed %d activities\n", count)
	return nil
}
