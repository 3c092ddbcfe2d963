//go:build !linux && !darwin && !freebsd

package main

import (
	"context"

	"github.com/anematode/solve2048/bfs"
)

// installSignalHandlers is a no-op on platforms without SIGUSR1/SIGTERM
// semantics; the run can still be stopped with a plain SIGINT via the
// runtime's default handling.
func installSignalHandlers(cancel context.CancelFunc, latest func() *bfs.LayerStats) {}
