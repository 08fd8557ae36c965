/*
Package cli provides command-line interface utilities for spendwatch.

The cli package includes output formatters, the status renderer, and common
CLI helpers used by the spendwatch command.

Output Formatting:

The cli package supports text and JSON output for displaying command
results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Status Rendering:

RenderStatus turns an evaluation result into the human-readable report the
status command prints, with currency-formatted amounts:

	cli.RenderStatus(os.Stdout, "acct-1", result, "$")

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
