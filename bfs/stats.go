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

package bfs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// StatsLogger appends one CSV row per completed layer, the same
// open-append-flush shape as the teacher's std.snmp logger.
type StatsLogger struct {
	w *csv.Writer
	f io.Closer
}

// NewStatsLogger opens (creating and truncating) path and writes a header
// row.
func NewStatsLogger(path string) (*StatsLogger, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "bfs: opening stats log")
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"tile_sum", "count", "elapsed_seconds", "positions_per_sec", "max_tile"}); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "bfs: writing stats header")
	}
	w.Flush()
	return &StatsLogger{w: w, f: f}, nil
}

// Log appends one row for s and flushes immediately, so a tail -f reader
// sees it right away.
func (l *StatsLogger) Log(s LayerStats) error {
	maxTile := 0
	for v := 15; v >= 0; v-- {
		if s.MaxTile[v] > 0 {
			maxTile = v
			break
		}
	}
	row := []string{
		strconv.FormatUint(uint64(s.TileSum), 10),
		strconv.FormatUint(s.Count, 10),
		strconv.FormatFloat(s.Elapsed.Seconds(), 'f', 3, 64),
		strconv.FormatFloat(s.Rate, 'f', 1, 64),
		fmt.Sprintf("2^%d", maxTile),
	}
	if err := l.w.Write(row); err != nil {
		return errors.Wrap(err, "bfs: writing stats row")
	}
	l.w.Flush()
	return l.w.Error()
}

// Close releases the underlying file.
func (l *StatsLogger) Close() error {
	return l.f.Close()
}
