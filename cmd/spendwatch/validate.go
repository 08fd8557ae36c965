package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendwatch-hq/spendwatch/pkg/cli"
	"spendwatch-hq/spendwatch/pkg/config"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a configuration file without starting the server.

The command applies defaults and environment variable overrides exactly
as the run command does, then reports the effective configuration.

Examples:
  # Validate the default config file
  spendwatch validate

  # Validate a specific file
  spendwatch validate --config /etc/spendwatch/config.yaml

  # Print the effective configuration as JSON
  spendwatch validate --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		return cli.NewConfigError("", "configuration invalid")
	}

	if validateFlags.format == string(cli.FormatJSON) {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, cfg)
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Listen address:  %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  Storage backend: %s\n", cfg.Storage.Backend)
	fmt.Printf("  Thresholds:      warning %.0f%%, approaching %.0f%%, critical %.0f%%\n",
		cfg.Policy.WarningThreshold, cfg.Policy.ApproachingThreshold, cfg.Policy.CriticalThreshold)
	fmt.Printf("  Upgrade:         %d day(s) to %s\n",
		cfg.Policy.UpgradeAgeDays, cli.FormatAmount(cfg.Policy.UpgradedLimit, cfg.Policy.Currency))
	if cfg.Rollover.Enabled {
		fmt.Printf("  Rollover:        %q\n", cfg.Rollover.Schedule)
	} else {
		fmt.Println("  Rollover:        disabled")
	}
	return nil
}
