package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context that is cancelled on the first
// SIGINT or SIGTERM. The run command derives its lifetime from this
// context so the scheduler, config watcher, and server all stop together.
// Notification stops after the first signal.
func SetupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		signal.Stop(sigChan)
		cancel()
	}()

	return ctx
}
