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

// Package board implements the 2048 board kernel: a 64-bit encoding of a
// 4x4 grid of 4-bit tiles, the eight rigid symmetries of the board, and
// the canonicalisation used to fold equivalent positions together.
package board

// Board is a 4x4 grid of 4-bit tiles packed into a 64-bit word. Nibble i
// (bits [4i, 4i+3]) holds the tile at cell i, where 0 means empty and
// v in [1,15] means the tile 2^v. Row r occupies nibbles [4r, 4r+3].
type Board uint64

// Symmetry is one of the eight rigid symmetries of the 4x4 board,
// represented as a nibble-permutation constant: the nibble at position j
// names the source index that supplies position j of the permuted board.
type Symmetry uint64

// The eight rigid symmetries of the 4x4 grid. Bit patterns are taken
// directly from the reference implementation's Position.h, which derives
// them as nibble-shuffle masks for the AVX-512 VPSHUFB-style primitive;
// the scalar semantics (see Permute) are the same regardless of how a
// given architecture vectorises the shuffle.
const (
	Identity  Symmetry = 0xfedcba9876543210
	Rotate90  Symmetry = 0xc840d951ea62fb73
	Rotate180 Symmetry = 0x0123456789abcdef
	Rotate270 Symmetry = 0x37bf26ae159d048c
	ReflectH  Symmetry = 0xcdef89ab45670123
	ReflectV  Symmetry = 0x32107654ba98fedc
	ReflectTL Symmetry = 0xfb73ea62d951c840
	ReflectTR Symmetry = 0x048c159d26ae37bf
)

// symmetries lists all eight group elements, identity first, in the
// order canonicalisation scans them.
var symmetries = [8]Symmetry{
	Identity, Rotate90, Rotate180, Rotate270,
	ReflectH, ReflectV, ReflectTL, ReflectTR,
}

// tileValue is 2^v for v in [0,15], with tileValue[0] = 0 representing an
// empty cell.
var tileValue [16]uint32

func init() {
	for v := 1; v < 16; v++ {
		tileValue[v] = 1 << uint(v)
	}
}

// GetTile returns the nibble value (0..15) stored at cell idx.
func GetTile(b Board, idx int) uint8 {
	return uint8((b >> (4 * uint(idx))) & 0xf)
}

// SetTile returns a copy of b with cell idx set to v (the low 4 bits of v
// are used).
func SetTile(b Board, idx int, v uint8) Board {
	shift := 4 * uint(idx)
	mask := Board(0xf) << shift
	return (b &^ mask) | (Board(v&0xf) << shift)
}

// TileSum returns the sum of 2^v over every non-empty cell of b.
func TileSum(b Board) uint32 {
	var sum uint32
	for i := 0; i < 16; i++ {
		sum += tileValue[GetTile(b, i)]
	}
	return sum
}

// MaxTile returns the largest nibble value (0..15) present on the board.
func MaxTile(b Board) uint8 {
	var m uint8
	for i := 0; i < 16; i++ {
		if v := GetTile(b, i); v > m {
			m = v
		}
	}
	return m
}

// Permute applies symmetry sigma to b: nibble j of the result is nibble
// (sigma >> 4j) of b.
func Permute(b Board, sigma Symmetry) Board {
	var out Board
	for j := 0; j < 16; j++ {
		src := (sigma >> (4 * uint(j))) & 0xf
		v := (b >> (4 * Board(src))) & 0xf
		out |= v << (4 * uint(j))
	}
	return out
}

// CanonicalForm returns the lexicographically smallest board among the
// eight symmetric images of b.
func CanonicalForm(b Board) Board {
	min := b
	for _, sigma := range symmetries[1:] {
		if p := Permute(b, sigma); p < min {
			min = p
		}
	}
	return min
}

// IsCanonical reports whether b already equals its canonical form.
func IsCanonical(b Board) bool {
	return b == CanonicalForm(b)
}
