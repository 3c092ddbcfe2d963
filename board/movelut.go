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

import "sync"

// moveRightRowLUT maps every possible 16-bit row (four nibbles) to the row
// produced by sliding it right and merging adjacent equal pairs from the
// right, each tile merging at most once, per the 2048 slide rule. Built
// once on first use.
var (
	moveRightRowLUT     [65536]uint16
	moveRightRowLUTOnce sync.Once
)

func buildMoveRightRowLUT() {
	for a := 0; a < 65536; a++ {
		moveRightRowLUT[a] = collapseRow(uint16(a))
	}
}

// collapseRow implements the construction rule from spec.md §4.1 exactly:
// three rightward collapses, one right-to-left merge pass (so 2,2,2,2
// becomes _,_,4,4), then two more rightward collapses.
func collapseRow(row uint16) uint16 {
	var t [4]uint8
	t[0] = uint8(row & 0xf)
	t[1] = uint8((row >> 4) & 0xf)
	t[2] = uint8((row >> 8) & 0xf)
	t[3] = uint8((row >> 12) & 0xf)

	collapseRight := func() {
		for i := 2; i >= 0; i-- {
			if t[i+1] == 0 {
				t[i+1] = t[i]
				t[i] = 0
			}
		}
	}

	collapseRight()
	collapseRight()
	collapseRight()

	for i := 2; i >= 0; i-- {
		if t[i] == t[i+1] && t[i] != 0 {
			t[i+1] = t[i] + 1
			t[i] = 0
		}
	}

	collapseRight()
	collapseRight()

	return uint16(t[0]) | uint16(t[1])<<4 | uint16(t[2])<<8 | uint16(t[3])<<12
}

// MoveRightRow applies the slide-right rule to one 16-bit row.
func MoveRightRow(row uint16) uint16 {
	moveRightRowLUTOnce.Do(buildMoveRightRowLUT)
	return moveRightRowLUT[row]
}

// MoveRight applies MoveRightRow to each of the four rows of b.
func MoveRight(b Board) Board {
	moveRightRowLUTOnce.Do(buildMoveRightRowLUT)
	var out Board
	for r := 0; r < 4; r++ {
		shift := 16 * uint(r)
		row := uint16((b >> shift) & 0xffff)
		out |= Board(moveRightRowLUT[row]) << shift
	}
	return out
}
