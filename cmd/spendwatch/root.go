package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "spendwatch",
	Short: "Spendwatch - daily spending-limit tracker and status service",
	Long: `Spendwatch tracks per-account daily spending limits and derives limit
status on demand.

It provides:
  - Limit status evaluation (usage percentage, status tier, remaining amount)
  - New-account probation with automatic limit upgrades
  - Daily spending rollover on a cron schedule
  - An HTTP status API with Prometheus metrics`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
