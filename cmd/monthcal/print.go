package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"monthcal/internal/calendar"
	"monthcal/internal/storage"
	"monthcal/internal/ui"
)

var printCmd = &cobra.Command{
	Use:   "print [YYYY-MM]",
	Short: "Print a month without starting the interactive view",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		var opts []ui.Option
		if len(args) == 1 {
			m, err := calendar.ParseMonth(args[0])
			if err != nil {
				return err
			}
			opts = append(opts, ui.WithMonth(m))
		}
		if noNotes, _ := cmd.Flags().GetBool("no-notes"); !noNotes {
			store, err := storage.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()
			opts = append(opts, ui.WithStore(store))
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.New(cfg, opts...).CalendarView())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().Bool("no-notes", false, "Do not mark days that have notes")
}
