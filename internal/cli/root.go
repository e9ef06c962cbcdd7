package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plantsense",
	Short: "PlantSense CLI - Plant sensor log analyzer",
	Long: `PlantSense CLI analyzes smart-plant-sensor log exports.

It reconciles the mixed epoch/uptime timestamp axis the logging firmware
produces, computes smoothed trend series, and derives summary statistics
(per-channel descriptive stats, mood distribution, pairwise correlation)
for reports and chart front-ends.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}
