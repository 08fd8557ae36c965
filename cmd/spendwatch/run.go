package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"spendwatch-hq/spendwatch/pkg/cli"
	"spendwatch-hq/spendwatch/pkg/config"
	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/provider"
	"spendwatch-hq/spendwatch/pkg/limits/rollover"
	"spendwatch-hq/spendwatch/pkg/server"
	"spendwatch-hq/spendwatch/pkg/telemetry/logging"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	watchConfig   bool
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the spendwatch status server",
	Long: `Start the spendwatch status server with the specified configuration.

The server exposes account management and limit-status evaluation over HTTP
and runs the daily rollover scheduler when enabled.

Examples:
  # Start with default config
  spendwatch run

  # Start with custom config
  spendwatch run --config /etc/spendwatch/config.yaml

  # Override listen address
  spendwatch run --listen 0.0.0.0:8080

  # Reload policy thresholds when the config file changes
  spendwatch run --watch

  # Validate config without starting the server
  spendwatch run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.watchConfig, "watch", false, "reload configuration when the file changes")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	}); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Spendwatch v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Open the account store
	backend, err := openBackend(&cfg.Storage)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer backend.Close()
	fmt.Printf("✓ Storage backend initialized (%s)\n", cfg.Storage.Backend)

	policy := cfg.Policy.Policy()
	metrics := limits.NewMetrics(nil)
	orch := provider.NewOrchestrator(provider.NewStoreProvider(backend), policy, metrics)

	// Cancelled on SIGINT/SIGTERM so every component below stops together.
	ctx := cli.SetupSignalHandler()

	// Start the rollover scheduler if enabled
	if cfg.Rollover.Enabled {
		scheduler := rollover.NewScheduler(backend, rollover.Config{
			Schedule: cfg.Rollover.Schedule,
			Policy:   policy,
		})
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to start rollover scheduler: %w", err))
		}
		defer scheduler.Stop()
		if next := scheduler.NextRun(); next != nil {
			slog.Debug("rollover scheduler started", "next_run", next)
		}
		fmt.Printf("✓ Rollover scheduler started (%s)\n", cfg.Rollover.Schedule)
	}

	// Watch the config file for policy changes if requested
	if runFlags.watchConfig {
		watcher, err := config.NewFileWatcher(cfgFile, slog.Default())
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to create config watcher: %w", err))
		}
		go func() {
			_ = watcher.Watch(ctx, func() error {
				return config.ReloadConfig(cfgFile)
			})
		}()
		defer watcher.Stop()
		fmt.Println("✓ Configuration watcher started")
	}

	metricsPath := ""
	if cfg.Telemetry.Metrics.Enabled {
		metricsPath = cfg.Telemetry.Metrics.Path
	}

	srv := server.New(&cfg.Server, server.Deps{
		Orchestrator: orch,
		Backend:      backend,
		Metrics:      metrics,
		MetricsPath:  metricsPath,
	})

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if metricsPath != "" {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, metricsPath)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Start blocks until a signal, context cancellation, or listener error.
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}
