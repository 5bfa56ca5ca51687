package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignalContext returns a context that is canceled on SIGINT or SIGTERM.
// Builds check it between plugin hooks, so an interrupted build writes nothing.
func WithSignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
