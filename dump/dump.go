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

// Package dump writes a layer's boards to disk as sorted, snappy-compressed
// 64-bit words (spec.md §6), the on-disk counterpart of an in-memory
// foldedset.Set.
package dump

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/anematode/solve2048/board"
	"github.com/anematode/solve2048/foldedset"
)

// Write snapshots every board in s to path, sorted ascending and encoded as
// consecutive little-endian uint64 words, wrapped in a snappy stream the
// same way the teacher's std.CompStream wraps a net.Conn.
func Write(path string, s *foldedset.Set) error {
	boards := make([]board.Board, 0, s.Capacity())
	var mu sync.Mutex
	s.Iterate(func(b board.Board) {
		mu.Lock()
		boards = append(boards, b)
		mu.Unlock()
	})
	sort.Slice(boards, func(i, j int) bool { return boards[i] < boards[j] })

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "dump: opening output file")
	}
	defer f.Close()

	w := snappy.NewBufferedWriter(f)
	bw := bufio.NewWriter(w)

	var buf [8]byte
	for _, b := range boards {
		binary.LittleEndian.PutUint64(buf[:], uint64(b))
		if _, err := bw.Write(buf[:]); err != nil {
			return errors.Wrap(err, "dump: writing board")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "dump: flushing board writer")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "dump: closing snappy stream")
	}
	return nil
}

// Read loads a dump written by Write back into a slice of boards, in the
// ascending order they were written.
func Read(path string) ([]board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dump: opening input file")
	}
	defer f.Close()

	r := snappy.NewReader(f)
	br := bufio.NewReader(r)

	var boards []board.Board
	var buf [8]byte
	for {
		_, err := io.ReadFull(br, buf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "dump: reading board")
		}
		boards = append(boards, board.Board(binary.LittleEndian.Uint64(buf[:])))
	}
	return boards, nil
}
