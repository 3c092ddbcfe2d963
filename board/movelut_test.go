package board

import "testing"

func TestMoveRightRowIdempotentAllRows(t *testing.T) {
	for a := 0; a < 65536; a++ {
		row := uint16(a)
		moved := MoveRightRow(row)
		again := MoveRightRow(moved)
		if moved != again {
			t.Fatalf("row %#x: MoveRightRow(%#x) = %#x, not idempotent", row, moved, again)
		}
	}
}

func TestMoveRightRowBasic(t *testing.T) {
	cases := []struct{ in, want uint16 }{
		// Two equal tiles (value 1, i.e. "2") at cells 0,1 merge to a
		// single tile of value 2 ("4") at the rightmost cell (nibble 3).
		{0x0011, 0x2000},
		// A lone tile at the leftmost cell slides all the way right.
		{0x0001, 0x1000},
		// Tiles separated by a gap still collapse and merge after sliding.
		{0x0101, 0x2000},
	}
	for _, c := range cases {
		if got := MoveRightRow(c.in); got != c.want {
			t.Fatalf("MoveRightRow(%#x) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestMoveRightWholeBoard(t *testing.T) {
	var b Board
	b = SetTile(b, 0, 1)
	b = SetTile(b, 1, 1)
	got := MoveRight(b)
	want := SetTile(Board(0), 3, 2)
	if got != want {
		t.Fatalf("MoveRight merged row incorrectly: got %#x want %#x", uint64(got), uint64(want))
	}
}
