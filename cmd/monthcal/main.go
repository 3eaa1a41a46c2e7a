package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"monthcal/internal/calendar"
	"monthcal/internal/config"
	"monthcal/internal/storage"
	"monthcal/internal/ui"
)

var (
	configPath string
	monthFlag  string
)

var rootCmd = &cobra.Command{
	Use:          "monthcal",
	Short:        "Interactive month calendar for the terminal",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer closeLog()

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		opts := []ui.Option{ui.WithStore(store), ui.WithLogger(logger)}
		if monthFlag != "" {
			m, err := calendar.ParseMonth(monthFlag)
			if err != nil {
				return err
			}
			opts = append(opts, ui.WithMonth(m))
		}
		logger.Info("starting", "config", configPath, "db", cfg.DBPath)
		if err := ui.Run(cfg, opts...); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $MONTHCAL_CONFIG or the user config dir)")
	rootCmd.Flags().StringVar(&monthFlag, "month", "", "open on this month (YYYY-MM)")
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger writes JSON logs to path. The terminal belongs to the UI, so
// without a path logs are dropped.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newJSONLogger(f), func() { f.Close() }, nil
}

func newJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
