package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendwatch-hq/spendwatch/pkg/cli"
	"spendwatch-hq/spendwatch/pkg/config"
	"spendwatch-hq/spendwatch/pkg/limits/provider"
	"spendwatch-hq/spendwatch/pkg/telemetry/logging"
)

var statusFlags struct {
	format string
}

var statusCmd = &cobra.Command{
	Use:   "status <account>",
	Short: "Evaluate the limit status of an account",
	Long: `Evaluate the daily limit status of an account from the configured store.

The command fetches the account's limit and spending records, evaluates
them, and prints the resulting status: usage percentage, status tier,
remaining amount, and new-account upgrade information.

Examples:
  # Human-readable report
  spendwatch status acct-123

  # JSON output
  spendwatch status acct-123 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: showStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFlags.format, "format", "text", "output format: text, json")
}

func showStatus(cmd *cobra.Command, args []string) error {
	account := args[0]

	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// One-shot commands keep log noise out of the report.
	logLevel := "error"
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
		return cli.NewCommandError("status", err)
	}
	defer backend.Close()

	orch := provider.NewOrchestrator(provider.NewStoreProvider(backend), cfg.Policy.Policy(), nil)
	result := orch.Snapshot(cmd.Context(), account)

	if statusFlags.format == string(cli.FormatJSON) {
		formatter := cli.NewFormatter(cli.FormatJSON)
		if err := formatter.FormatTo(os.Stdout, result); err != nil {
			return cli.NewCommandError("status", err)
		}
	} else {
		if err := cli.RenderStatus(os.Stdout, account, result, cfg.Policy.Currency); err != nil {
			return cli.NewCommandError("status", err)
		}
	}

	if !result.IsReady() {
		return cli.NewCommandError("status", result.Err())
	}
	return nil
}
