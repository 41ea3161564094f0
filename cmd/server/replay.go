package main

import (
	"encoding/json"
	"fmt"
	"os"

	"visit-analytics/internal/aggregators"
	"visit-analytics/internal/app"
	"visit-analytics/internal/shared/loggers"

	"github.com/spf13/cobra"
)

var (
	replayFile     string
	replayLogLevel string
	replayOptions  app.ReplayOptions
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Roll up a JSON-lines event file and print the dashboard",
	Long: `Replay reads one event object per line, normalizes the events, rolls them up
concurrently into an in-memory registry and prints the dashboard JSON to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := loggers.NewWithWriter(replayLogLevel, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		f, err := os.Open(replayFile)
		if err != nil {
			return fmt.Errorf("failed to open events file: %w", err)
		}
		defer f.Close()

		ctx := logger.WithContext(cmd.Context())
		result, err := app.Replay(ctx, replayOptions, f)
		if err != nil {
			return fmt.Errorf("replay failed: %w", err)
		}

		logger.Info().
			Int64("accepted", result.Accepted).
			Int64("rejected", result.Rejected).
			Msg("replay completed")

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result.Dashboard)
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayFile, "file", "f", "", "JSON-lines events file")
	replayCmd.Flags().StringVarP(&replayOptions.Service, "service", "s", "", "service the events belong to")
	replayCmd.Flags().IntVarP(&replayOptions.Workers, "workers", "w", 4, "concurrent rollup workers")
	replayCmd.Flags().IntVar(&replayOptions.Limit, "limit", 0, "groups per day in the dashboard (0 = all)")
	replayCmd.Flags().StringVar(&replayOptions.CardinalityMode, "cardinality", aggregators.CardinalityModeExact, "unique visitor counting: exact or hll")
	replayCmd.Flags().IntVar(&replayOptions.Precision, "precision", 14, "hyperloglog precision (14 or 16)")
	replayCmd.Flags().StringVar(&replayLogLevel, "log-level", "info", "log level")
	_ = replayCmd.MarkFlagRequired("file")
	_ = replayCmd.MarkFlagRequired("service")
	rootCmd.AddCommand(replayCmd)
}
