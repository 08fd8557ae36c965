package cli

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func TestSetupSignalHandler_ActiveUntilSignal(t *testing.T) {
	ctx := SetupSignalHandler()

	select {
	case <-ctx.Done():
		t.Fatal("Context cancelled before any signal")
	case <-time.After(10 * time.Millisecond):
	}

	if ctx.Done() == nil {
		t.Fatal("Context must carry a Done channel")
	}
}

func TestSetupSignalHandler_CancelsOnSigterm(t *testing.T) {
	ctx := SetupSignalHandler()

	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("FindProcess failed: %v", err)
	}
	if err := p.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Sending SIGTERM failed: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Context not cancelled after SIGTERM")
	}
}
