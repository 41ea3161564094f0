package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "visit-analytics",
	Short:        "visit-analytics rolls up site visits into per-day counts, averages and rankings",
	SilenceUsage: true,
}
