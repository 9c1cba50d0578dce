// Package heartbeat keeps an external CI harness from deeming a long,
// silent build stalled.
package heartbeat

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Heartbeat periodically writes a keepalive line.
type Heartbeat struct {
	w        io.Writer
	interval time.Duration
}

// New returns a Heartbeat writing to w every interval.
func New(w io.Writer, interval time.Duration) *Heartbeat {
	return &Heartbeat{w: w, interval: interval}
}

// Run emits a line every interval until ctx is cancelled.
// It always returns nil so it never aborts the run it accompanies.
func (h *Heartbeat) Run(ctx context.Context) error {
	if h.interval <= 0 {
		return nil
	}

	start := time.Now()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(start).Round(time.Second)
			_, _ = fmt.Fprintf(h.w, "firedrake-install is still running (%s elapsed)\n", elapsed)
		}
	}
}
