package dump

import (
	"path/filepath"
	"testing"

	"github.com/anematode/solve2048/board"
	"github.com/anematode/solve2048/foldedset"
)

func TestWriteReadRoundTrip(t *testing.T) {
	s, err := foldedset.New(foldedset.Config{TileSum: 4, InitialCapacity: 64})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var want []board.Board
	for i := 0; i < 16; i++ {
		for j := i + 1; j < 16; j++ {
			var b board.Board
			b = board.SetTile(b, i, 1)
			b = board.SetTile(b, j, 1)
			b = board.CanonicalForm(b)
			if board.TileSum(b) != 4 {
				continue
			}
			if s.Insert(b) {
				want = append(want, b)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "layer4.dump")
	if err := Write(path, s); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d boards, want %d", len(got), len(want))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("dump not sorted ascending at index %d: %#x > %#x", i, uint64(got[i-1]), uint64(got[i]))
		}
	}

	wantSet := make(map[board.Board]bool, len(want))
	for _, b := range want {
		wantSet[b] = true
	}
	for _, b := range got {
		if !wantSet[b] {
			t.Fatalf("unexpected board %#x in dump", uint64(b))
		}
	}
}
