package cli

import (
	"errors"
	"strings"
	"testing"

	"spendwatch-hq/spendwatch/pkg/limits"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"zero", 0, "$", "$0.00"},
		{"small", 50, "$", "$50.00"},
		{"cents", 12.5, "$", "$12.50"},
		{"thousands", 1234.5, "$", "$1,234.50"},
		{"millions", 1234567.89, "$", "$1,234,567.89"},
		{"negative", -50, "$", "-$50.00"},
		{"negative thousands", -1234.56, "$", "-$1,234.56"},
		{"euro symbol", 999.99, "€", "€999.99"},
		{"rounding carries", 9.999, "$", "$10.00"},
		{"exact boundary", 1000, "$", "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.amount, tt.currency); got != tt.want {
				t.Errorf("FormatAmount(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestRenderStatus_Ready(t *testing.T) {
	status := &limits.Status{
		Remaining:        400,
		UsagePercentage:  20,
		Tier:             limits.TierOK,
		IsNewAccount:     true,
		UpgradeEligible:  true,
		DaysUntilUpgrade: 4,
	}

	var sb strings.Builder
	if err := RenderStatus(&sb, "acct-1", limits.Ready(status), "$"); err != nil {
		t.Fatalf("RenderStatus failed: %v", err)
	}

	out := sb.String()
	for _, want := range []string{"acct-1", "[OK]", "20.0%", "$400.00", "New account", "4 day(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderStatus_CriticalOverspend(t *testing.T) {
	status := &limits.Status{
		Remaining:        -250,
		UsagePercentage:  125,
		Tier:             limits.TierCritical,
		ApproachingLimit: true,
	}

	var sb strings.Builder
	if err := RenderStatus(&sb, "acct-2", limits.Ready(status), "$"); err != nil {
		t.Fatalf("RenderStatus failed: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "[CRITICAL]") {
		t.Errorf("expected critical label in output:\n%s", out)
	}
	if !strings.Contains(out, "-$250.00") {
		t.Errorf("expected negative remaining in output:\n%s", out)
	}
	if !strings.Contains(out, "Approaching daily limit") {
		t.Errorf("expected approaching banner in output:\n%s", out)
	}
}

func TestRenderStatus_Unavailable(t *testing.T) {
	var sb strings.Builder
	err := RenderStatus(&sb, "acct-3", limits.Unavailable(errors.New("store down")), "$")
	if err != nil {
		t.Fatalf("RenderStatus failed: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "unavailable") || !strings.Contains(out, "store down") {
		t.Errorf("expected unavailable message in output:\n%s", out)
	}
}

func TestRenderStatus_Loading(t *testing.T) {
	var sb strings.Builder
	if err := RenderStatus(&sb, "acct-4", limits.Loading(), "$"); err != nil {
		t.Fatalf("RenderStatus failed: %v", err)
	}
	if !strings.Contains(sb.String(), "loading") {
		t.Errorf("expected loading placeholder, got:\n%s", sb.String())
	}
}
