package signalx

import (
	"context"
	"os"
	"os/signal"
)

var registered = make(chan struct{})

// Handler registers for SIGINT/SIGTERM and returns a context the CLI's
// cli.App.RunContext cancels on the first signal, so an in-flight batch of
// normalizations gets a chance to stop between files rather than mid-write.
// A second signal forces an immediate exit.
func Handler() context.Context {
	close(registered) // Panics when called twice.

	sigChan := make(chan os.Signal, len(sigs))
	ctx, cancel := context.WithCancel(context.Background())

	// Register for signals.
	signal.Notify(sigChan, sigs...)

	// Process signals.
	go func() {
		var exited bool
		for range sigChan {
			if exited {
				os.Exit(1)
			}
			cancel()
			exited = true
		}
	}()

	return ctx
}
