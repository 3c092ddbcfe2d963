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

import "github.com/anematode/solve2048/board"

// StartingPositions enumerates every canonical board reachable by placing
// two tiles (each 2 or 4) on an otherwise empty 4x4 board, deduplicated
// under the 8-element symmetry group, per spec.md §4.4 "Seeds".
func StartingPositions() []board.Board {
	seen := make(map[board.Board]bool)
	for i := 0; i < 16; i++ {
		for j := i + 1; j < 16; j++ {
			for t1 := uint8(1); t1 <= 2; t1++ {
				for t2 := uint8(1); t2 <= 2; t2++ {
					var b board.Board
					b = board.SetTile(b, i, t1)
					b = board.SetTile(b, j, t2)
					seen[board.CanonicalForm(b)] = true
				}
			}
		}
	}
	out := make([]board.Board, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	return out
}
