package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"monthcal/internal/calendar"
	"monthcal/internal/storage"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes attached to days",
}

var noteAddCmd = &cobra.Command{
	Use:   "add YYYY-MM-DD text...",
	Short: "Attach a note to a day",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := calendar.ParseDate(args[0])
		if err != nil {
			return err
		}
		return withStore(func(s *storage.Store) error {
			n, err := s.AddNote(date, strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("failed to add note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ADDED #%d %s\n", n.ID, n.Date.Format("2006-01-02"))
			return nil
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list YYYY-MM-DD",
	Short: "List the notes of a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := calendar.ParseDate(args[0])
		if err != nil {
			return err
		}
		return withStore(func(s *storage.Store) error {
			notes, err := s.NotesOn(date)
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes")
				return nil
			}
			for _, n := range notes {
				fmt.Fprintf(out, "#%d %s\n", n.ID, n.Text)
			}
			return nil
		})
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}
		return withStore(func(s *storage.Store) error {
			if err := s.DeleteNote(id); err != nil {
				return fmt.Errorf("failed to delete note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "DELETED #%d\n", id)
			return nil
		})
	},
}

func withStore(fn func(*storage.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func init() {
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteRmCmd)
	rootCmd.AddCommand(noteCmd)
}
