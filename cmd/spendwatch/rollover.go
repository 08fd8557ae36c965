package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendwatch-hq/spendwatch/pkg/cli"
	"spendwatch-hq/spendwatch/pkg/config"
	"spendwatch-hq/spendwatch/pkg/limits/rollover"
	"spendwatch-hq/spendwatch/pkg/telemetry/logging"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Run the daily rollover immediately",
	Long: `Reset every account's daily spending and promote aged new accounts now,
without waiting for the scheduled rollover.

This is the same operation the scheduler runs at the configured cron
schedule: spending records restart from zero and new accounts past the
probation window receive the upgraded limit.

Examples:
  spendwatch rollover
  spendwatch rollover --config /etc/spendwatch/config.yaml`,
	RunE: runRolloverNow,
}

func init() {
	rootCmd.AddCommand(rolloverCmd)
}

func runRolloverNow(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	if _, err := logging.Setup(logging.Config{
		Level:  logLevel,
		Format: "text",
		Writer: os.Stderr,
	}); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	backend, err := openBackend(&cfg.Storage)
	if err != nil {
		return cli.NewCommandError("rollover", err)
	}
	defer backend.Close()

	scheduler := rollover.NewScheduler(backend, rollover.Config{
		Schedule: cfg.Rollover.Schedule,
		Policy:   cfg.Policy.Policy(),
	})

	if err := scheduler.RunNow(cmd.Context()); err != nil {
		return cli.NewCommandError("rollover", err)
	}

	fmt.Println("✓ Rollover complete")
	return nil
}
