package main

import (
	"encoding/json"
	"fmt"

	"visit-analytics/internal/app"
	"visit-analytics/internal/models"
	"visit-analytics/internal/shared/configs"
	"visit-analytics/internal/stores"

	"github.com/spf13/cobra"
)

var (
	archiveConfigPath string
	archiveService    string
	archiveDate       string
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the summaries of days that left the retention window",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the archived days of a service",
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := openArchive()
		if err != nil {
			return err
		}

		days, err := archive.List(cmd.Context(), archiveService)
		if err != nil {
			return fmt.Errorf("failed to list archived days: %w", err)
		}
		for _, day := range days {
			fmt.Fprintln(cmd.OutOrStdout(), day)
		}
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the archived summary of one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := models.ParseDay(archiveDate)
		if err != nil {
			return err
		}
		archive, err := openArchive()
		if err != nil {
			return err
		}

		summary, err := archive.Get(cmd.Context(), archiveService, day)
		if err != nil {
			return fmt.Errorf("failed to read archived day %s: %w", day, err)
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	},
}

func openArchive() (stores.DayArchiveStore, error) {
	cfg, err := configs.LoadConfig(archiveConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.OpenDayArchive(cfg)
}

func init() {
	archiveCmd.PersistentFlags().StringVarP(&archiveConfigPath, "config", "c", "./configs/configs.yml", "config file (YAML)")
	archiveCmd.PersistentFlags().StringVarP(&archiveService, "service", "s", "", "service whose archive is read")
	_ = archiveCmd.MarkPersistentFlagRequired("service")

	archiveShowCmd.Flags().StringVarP(&archiveDate, "date", "d", "", "day to print (2006-01-02)")
	_ = archiveShowCmd.MarkFlagRequired("date")

	archiveCmd.AddCommand(archiveListCmd, archiveShowCmd)
	rootCmd.AddCommand(archiveCmd)
}
