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

// Package fold implements the permutation folding of spec.md §4.2: a
// canonical board's three lowest nibbles are sorted into non-increasing
// order, and the permutation needed to recover their original order is
// recorded as an index in [0,5].
package fold

import (
	"sync"

	"github.com/anematode/solve2048/board"
)

// perms lists the six permutations of (0,1,2) in the order their index is
// assigned, matching the reference implementation's `goose` shuffle mask
// (original_source/AdvancedHashSet.h): index i gives, for each of the
// three low cell positions, which rank (0=largest..2=smallest) of the
// sorted triple belongs there.
var perms = [6][3]int{
	{0, 1, 2},
	{0, 2, 1},
	{1, 0, 2},
	{1, 2, 0},
	{2, 0, 1},
	{2, 1, 0},
}

// rankOf returns the index i in [0,5] such that applying perms[i] to the
// sorted-descending triple (a,b,c) reproduces (orig0,orig1,orig2). This is
// the single, authoritative derivation referenced by both the table build
// and any caller needing to re-derive the index inline -- spec.md §9
// flags the reference implementation's two independent, occasionally
// disagreeing derivations as a defect; this package keeps exactly one.
func rankOf(sorted [3]uint8, orig0, orig1, orig2 uint8) int {
	for i, p := range perms {
		if sorted[p[0]] == orig0 && sorted[p[1]] == orig1 && sorted[p[2]] == orig2 {
			return i
		}
	}
	panic("fold: no permutation maps sorted triple to original")
}

// entry is one row of the 4096-entry folding table.
type entry struct {
	sortedLow12 uint16 // the low 12 bits (three nibbles), sorted descending
	index       uint8  // the permutation index recovering the original order
}

var (
	table     [4096]entry
	tableOnce sync.Once
)

func buildTable() {
	for i := 0; i < 4096; i++ {
		a := uint8(i & 0xf)
		b := uint8((i >> 4) & 0xf)
		c := uint8((i >> 8) & 0xf)

		sorted := [3]uint8{a, b, c}
		// Sort descending (insertion sort on 3 elements).
		if sorted[1] < sorted[2] {
			sorted[1], sorted[2] = sorted[2], sorted[1]
		}
		if sorted[0] < sorted[1] {
			sorted[0], sorted[1] = sorted[1], sorted[0]
		}
		if sorted[1] < sorted[2] {
			sorted[1], sorted[2] = sorted[2], sorted[1]
		}

		idx := rankOf(sorted, a, b, c)
		table[i] = entry{
			sortedLow12: uint16(sorted[0]) | uint16(sorted[1])<<4 | uint16(sorted[2])<<8,
			index:       uint8(idx),
		}
	}
}

// Fold returns the sorted variant of a canonical board b (its three
// lowest nibbles rearranged into non-increasing order) together with the
// permutation index in [0,5] that recovers b from the sorted form.
func Fold(b board.Board) (sorted board.Board, index uint8) {
	tableOnce.Do(buildTable)
	e := table[uint16(b)&0xfff]
	sorted = (b &^ 0xfff) | board.Board(e.sortedLow12)
	return sorted, e.index
}

// Unfold reconstructs one original board from a sorted form and a
// permutation index, per the recovery rule of spec.md §3.3/§4.3: apply
// perms[index] to the three low nibbles of sorted.
func Unfold(sorted board.Board, index uint8) board.Board {
	t0 := board.GetTile(sorted, 0)
	t1 := board.GetTile(sorted, 1)
	t2 := board.GetTile(sorted, 2)
	triple := [3]uint8{t0, t1, t2}

	p := perms[index]
	out := sorted
	out = board.SetTile(out, 0, triple[p[0]])
	out = board.SetTile(out, 1, triple[p[1]])
	out = board.SetTile(out, 2, triple[p[2]])
	return out
}
