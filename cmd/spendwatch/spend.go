package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"spendwatch-hq/spendwatch/pkg/cli"
	"spendwatch-hq/spendwatch/pkg/config"
	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/storage"
	"spendwatch-hq/spendwatch/pkg/telemetry/logging"
)

var spendFlags struct {
	create     bool
	dailyLimit float64
}

var spendCmd = &cobra.Command{
	Use:   "spend <account> <amount>",
	Short: "Record a spend event for an account",
	Long: `Record a spend event against an account's daily limit.

The amount is added to the account's running total and the transaction
count is incremented.

Examples:
  # Record a spend
  spendwatch spend acct-123 25.50

  # Create the account on first spend with a 500 daily limit
  spendwatch spend acct-123 25.50 --create --daily-limit 500`,
	Args: cobra.ExactArgs(2),
	RunE: recordSpend,
}

func init() {
	rootCmd.AddCommand(spendCmd)

	spendCmd.Flags().BoolVar(&spendFlags.create, "create", false, "create the account if it does not exist")
	spendCmd.Flags().Float64Var(&spendFlags.dailyLimit, "daily-limit", 0, "daily limit when creating the account")
}

func recordSpend(cmd *cobra.Command, args []string) error {
	account := args[0]
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return cli.NewCommandError("spend", fmt.Errorf("invalid amount %q: %w", args[1], err))
	}
	if amount <= 0 {
		return cli.NewCommandError("spend", fmt.Errorf("amount must be positive, got %v", amount))
	}

	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

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
		return cli.NewCommandError("spend", err)
	}
	defer backend.Close()

	ctx := cmd.Context()

	if spendFlags.create {
		state, err := backend.LoadAccount(ctx, account)
		if err != nil {
			return cli.NewCommandError("spend", err)
		}
		if state == nil {
			if spendFlags.dailyLimit <= 0 {
				return cli.NewCommandError("spend", errors.New("--daily-limit must be positive when creating an account"))
			}
			now := time.Now()
			if err := backend.SaveAccount(ctx, &storage.AccountState{
				Account:     account,
				DailyLimit:  spendFlags.dailyLimit,
				LimitType:   limits.LimitTypeNewAccount,
				CreatedAt:   now,
				LastUpdated: now,
			}); err != nil {
				return cli.NewCommandError("spend", err)
			}
			fmt.Printf("✓ Account %s created (daily limit %s)\n",
				account, cli.FormatAmount(spendFlags.dailyLimit, cfg.Policy.Currency))
		}
	}

	if err := backend.RecordSpend(ctx, account, amount); err != nil {
		if errors.Is(err, limits.ErrAccountNotFound) {
			return cli.NewCommandError("spend", fmt.Errorf("account %q not found (use --create to add it)", account))
		}
		return cli.NewCommandError("spend", err)
	}

	state, err := backend.LoadAccount(ctx, account)
	if err != nil || state == nil {
		return cli.NewCommandError("spend", fmt.Errorf("failed to reload account: %v", err))
	}

	fmt.Printf("✓ Recorded %s against %s (total today: %s of %s, %d transactions)\n",
		cli.FormatAmount(amount, cfg.Policy.Currency),
		account,
		cli.FormatAmount(state.Spending.TotalSpent, cfg.Policy.Currency),
		cli.FormatAmount(state.DailyLimit, cfg.Policy.Currency),
		state.Spending.TransactionCount,
	)
	return nil
}
