// Package workers runs the console's background work.
//
// A [Worker] is started with the runtime context and stopped on exit; the
// [Workers] aggregate starts and stops several of them together. The only
// worker today is the [Poller], which re-runs the refresh job of every open
// screen on a fixed interval.
package workers

import "context"

// Worker is a background component with a start/stop lifecycle.
type Worker interface {
	// Start launches the worker. It must not block.
	Start(ctx context.Context)

	// Stop ends the worker and waits for running work to return.
	Stop()
}
