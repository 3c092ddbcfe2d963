package board

import "testing"

func TestSuccessorsTileSumDelta(t *testing.T) {
	var b Board
	b = SetTile(b, 0, 1)
	b = SetTile(b, 5, 2)
	base := TileSum(b)

	buf := NewSuccessorBuffer()
	for _, spawn := range []uint8{1, 2} {
		Successors(b, spawn, buf)
		if len(buf.Boards()) == 0 {
			t.Fatalf("spawn %d: expected at least one successor", spawn)
		}
		want := base + 2*uint32(spawn)
		for _, s := range buf.Boards() {
			if got := TileSum(s); got != want {
				t.Fatalf("spawn %d: successor %#x has tile sum %d, want %d", spawn, uint64(s), got, want)
			}
			if !IsCanonical(s) {
				t.Fatalf("spawn %d: successor %#x is not canonical", spawn, uint64(s))
			}
		}
	}
}

func TestSuccessorsSingleBoardSpawn1(t *testing.T) {
	// b: tile 2 at cell 0, tile 2 at cell 1 -- the spec.md §8 scenario.
	var b Board
	b = SetTile(b, 0, 1)
	b = SetTile(b, 1, 1)

	buf := NewSuccessorBuffer()
	Successors(b, 1, buf)

	seen := make(map[Board]bool)
	for _, s := range buf.Boards() {
		seen[s] = true
	}
	if len(seen) == 0 {
		t.Fatal("expected at least one canonicalised successor")
	}
	for s := range seen {
		if TileSum(s) != TileSum(b)+2 {
			t.Fatalf("successor %#x has wrong tile sum", uint64(s))
		}
	}
}

func TestSuccessorsEmptyBoard(t *testing.T) {
	buf := NewSuccessorBuffer()
	Successors(0, 1, buf)
	for _, s := range buf.Boards() {
		if TileSum(s) != 2 {
			t.Fatalf("successor %#x has tile sum %d, want 2", uint64(s), TileSum(s))
		}
	}
}
