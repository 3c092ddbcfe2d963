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

package board

// SuccessorBuffer is a reusable scratch buffer for Successors, so a BFS
// worker goroutine can generate successors for many boards in a row
// without allocating on every call (spec.md §9, thread-local scratch
// buffers).
type SuccessorBuffer struct {
	boards []Board
}

// NewSuccessorBuffer returns an empty, ready-to-use buffer.
func NewSuccessorBuffer() *SuccessorBuffer {
	return &SuccessorBuffer{boards: make([]Board, 0, 64)}
}

// Boards returns the successors produced by the most recent call to
// Successors. The slice is only valid until the next call on the same
// buffer.
func (s *SuccessorBuffer) Boards() []Board {
	return s.boards
}

// Successors enumerates the canonicalised candidate boards reachable from
// b by spawning a tile of value spawn (1 for a 2-tile, 2 for a 4-tile)
// into any empty cell and sliding in one of the four directions, per
// spec.md §4.1. The result is written into buf and may contain
// duplicates across rotations; deduplication is the caller's
// responsibility (the folded set handles it on insert).
func Successors(b Board, spawn uint8, buf *SuccessorBuffer) {
	buf.boards = buf.boards[:0]

	var rotations [4]Board
	rotations[0] = Permute(b, Identity)
	rotations[1] = Permute(b, Rotate90)
	rotations[2] = Permute(b, Rotate180)
	rotations[3] = Permute(b, Rotate270)

	var moved [4]Board
	for i, r := range rotations {
		moved[i] = MoveRight(r)
	}

	for rotI := 0; rotI < 4; rotI++ {
		start := rotations[rotI]
		afterMove := moved[rotI]
		necessarilyValid := start != afterMove

		for row := 0; row < 4; row++ {
			rowShift := 16 * uint(row)
			rowBits := uint16((start >> rowShift) & 0xffff)

			prevNonEmpty := false
			for col := 0; col < 4; col++ {
				empty := (rowBits>>(4*uint(col)))&0xf == 0
				// A cell starts a new candidate iff it is empty and is
				// either the row edge or preceded by a non-empty cell:
				// the leftmost-empty-in-a-contiguous-empty-run rule of
				// spec.md §4.1.
				if empty && (col == 0 || prevNonEmpty) {
					candidateRow := rowBits | uint16(spawn)<<(4*uint(col))
					replacedRow := MoveRightRow(candidateRow)
					valid := replacedRow != candidateRow || necessarilyValid
					if valid {
						candidate := (afterMove &^ (Board(0xffff) << rowShift)) | (Board(replacedRow) << rowShift)
						buf.boards = append(buf.boards, CanonicalForm(candidate))
					}
				}
				prevNonEmpty = !empty
			}
		}
	}
}
