// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

//go:build linux || darwin || freebsd

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anematode/solve2048/bfs"
)

// installSignalHandlers starts a goroutine that dumps the latest layer
// stats on SIGUSR1 and cancels the run on SIGINT/SIGTERM, the same
// signal.Notify shape as the teacher's client.sigHandler generalised from
// one fixed signal to a small dispatch table.
func installSignalHandlers(cancel context.CancelFunc, latest func() *bfs.LayerStats) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGINT, syscall.SIGTERM)
	signal.Ignore(syscall.SIGPIPE)

	go func() {
		for sig := range ch {
			switch sig {
			case syscall.SIGUSR1:
				if s := latest(); s != nil {
					log.Printf("layer snapshot: tile_sum=%d count=%d rate=%.1f/s", s.TileSum, s.Count, s.Rate)
				} else {
					log.Println("layer snapshot: no layer completed yet")
				}
			case syscall.SIGINT, syscall.SIGTERM:
				log.Println("received shutdown signal, finishing current layer")
				cancel()
				return
			}
		}
	}()
}
