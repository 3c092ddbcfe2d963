package board

import "testing"

func TestCanonicalFormIdempotent(t *testing.T) {
	cases := []Board{
		0,
		SetTile(SetTile(0, 0, 1), 1, 1),
		SetTile(SetTile(0, 5, 3), 10, 2),
		0x123456789abcdef0,
	}
	for _, b := range cases {
		c1 := CanonicalForm(b)
		c2 := CanonicalForm(c1)
		if c1 != c2 {
			t.Fatalf("CanonicalForm not idempotent for %#x: %#x != %#x", uint64(b), uint64(c1), uint64(c2))
		}
	}
}

func TestCanonicalFormSymmetryInvariant(t *testing.T) {
	b := SetTile(SetTile(SetTile(0, 0, 1), 1, 2), 5, 3)
	want := CanonicalForm(b)
	for _, sigma := range symmetries {
		got := CanonicalForm(Permute(b, sigma))
		if got != want {
			t.Fatalf("canonical form changed under symmetry %#x: got %#x want %#x", uint64(sigma), uint64(got), uint64(want))
		}
	}
}

func TestGetSetTileRoundTrip(t *testing.T) {
	var b Board
	for i := 0; i < 16; i++ {
		b = SetTile(b, i, uint8(i%16))
	}
	for i := 0; i < 16; i++ {
		if got := GetTile(b, i); got != uint8(i%16) {
			t.Fatalf("cell %d: got %d want %d", i, got, i%16)
		}
	}
}

func TestTileSum(t *testing.T) {
	b := SetTile(SetTile(0, 0, 1), 1, 2) // 2 + 4
	if got := TileSum(b); got != 6 {
		t.Fatalf("got %d want 6", got)
	}
}

func TestMaxTile(t *testing.T) {
	b := SetTile(SetTile(0, 3, 1), 7, 5)
	if got := MaxTile(b); got != 5 {
		t.Fatalf("got %d want 5", got)
	}
}

func TestIsCanonical(t *testing.T) {
	b := SetTile(SetTile(0, 0, 1), 1, 2)
	c := CanonicalForm(b)
	if !IsCanonical(c) {
		t.Fatalf("canonical form %#x reports non-canonical", uint64(c))
	}
}

func TestPermuteIdentity(t *testing.T) {
	b := Board(0x123456789abcdef0)
	if got := Permute(b, Identity); got != b {
		t.Fatalf("identity permute changed board: got %#x want %#x", uint64(got), uint64(b))
	}
}
