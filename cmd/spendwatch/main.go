// Spendwatch is a daily spending-limit tracker and status service.
//
// It stores per-account daily limits and running spending, evaluates limit
// status on demand (usage percentage, status tier, upgrade eligibility),
// and serves the results over HTTP. A cron-driven rollover resets spending
// each day and promotes new accounts that have aged past the probation
// window.
//
// Usage:
//
//	# Start the status server with default configuration
//	spendwatch run
//
//	# Start with a custom configuration file
//	spendwatch run --config /path/to/config.yaml
//
//	# Evaluate one account's limit status from the store
//	spendwatch status acct-123
//
//	# Record a spend event from the command line
//	spendwatch spend acct-123 25.50
//
//	# Validate a configuration file
//	spendwatch validate --config /path/to/config.yaml
//
//	# Show version information
//	spendwatch version
package main

func main() {
	Execute()
}
