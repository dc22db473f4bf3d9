package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/saurabhkm/pland/internal/model"
	"github.com/saurabhkm/pland/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the schedule with a JSON export",
	Long: `Import a schedule previously produced by 'pland export', replacing the
current schedule wholesale. Reads from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var doc model.Document
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return fmt.Errorf("decode schedule: %w", err)
	}
	sched := doc.Schedule()
	if err := sched.Validate(); err != nil {
		return err
	}

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open schedule database: %w", err)
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), sched); err != nil {
		return err
	}
	fmt.Printf("imported %d activities\n", len(sched.Activities))
	return nil
}
