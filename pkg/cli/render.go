package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"spendwatch-hq/spendwatch/pkg/limits"
)

// FormatAmount renders a numeric amount as a display string with the given
// currency symbol, thousands separators, and two decimal places.
//
//	FormatAmount(1234.5, "$")  => "$1,234.50"
//	FormatAmount(-50, "$")     => "-$50.00"
func FormatAmount(amount float64, currency string) string {
	negative := math.Signbit(amount)
	abs := math.Abs(amount)

	whole := int64(abs)
	cents := int64(math.Round((abs - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := fmt.Sprintf("%d", whole)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, currency, sb.String(), cents)
}

// tierLabel maps a status tier onto its display label.
func tierLabel(tier limits.Tier) string {
	switch tier {
	case limits.TierCritical:
		return "CRITICAL"
	case limits.TierWarning:
		return "WARNING"
	default:
		return "OK"
	}
}

// RenderStatus writes a human-readable limit-status report for an account.
// The three result states render differently: a loading result prints a
// short placeholder, an unavailable result prints the error, and a ready
// result prints the full report.
func RenderStatus(w io.Writer, account string, result limits.Result, currency string) error {
	switch result.State() {
	case limits.StateLoading:
		_, err := fmt.Fprintf(w, "Account %s: loading...\n", account)
		return err

	case limits.StateUnavailable:
		_, err := fmt.Fprintf(w, "Account %s: status unavailable: %v\n", account, result.Err())
		return err
	}

	status := result.Status()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Account %s [%s]\n", account, tierLabel(status.Tier))
	fmt.Fprintf(&sb, "  Usage:     %.1f%%\n", status.UsagePercentage)
	fmt.Fprintf(&sb, "  Remaining: %s\n", FormatAmount(status.Remaining, currency))

	if status.ApproachingLimit {
		sb.WriteString("  Approaching daily limit\n")
	}
	if status.IsNewAccount {
		sb.WriteString("  New account limits apply\n")
		if status.UpgradeEligible {
			fmt.Fprintf(&sb, "  Limit upgrade in %d day(s)\n", status.DaysUntilUpgrade)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
