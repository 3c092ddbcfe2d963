package bfs

import (
	"context"
	"runtime"
	"testing"
)

func TestSeedProducesThreeLayers(t *testing.T) {
	d := NewDriver(Config{InitialCapacity: 64})
	if err := d.Seed(); err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	if d.TileSum() != 6 {
		t.Fatalf("TileSum() after Seed = %d, want 6", d.TileSum())
	}
	if d.prev.Count() == 0 || d.cur.Count() == 0 || d.next.Count() == 0 {
		t.Fatalf("expected all three seeded layers non-empty, got %d/%d/%d",
			d.prev.Count(), d.cur.Count(), d.next.Count())
	}
}

func TestAdvanceGrowsTileSum(t *testing.T) {
	d := NewDriver(Config{InitialCapacity: 64, GrowthFactor: 4})
	if err := d.Seed(); err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	stats, err := d.Advance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TileSum != 6 {
		t.Fatalf("first Advance reported tile sum %d, want 6", stats.TileSum)
	}
	if stats.Count == 0 {
		t.Fatal("first Advance reported zero positions for tile sum 6")
	}
	if d.TileSum() != 8 {
		t.Fatalf("TileSum() after one Advance = %d, want 8", d.TileSum())
	}

	stats2, err := d.Advance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats2.TileSum != 8 {
		t.Fatalf("second Advance reported tile sum %d, want 8", stats2.TileSum)
	}
	if d.TileSum() != 10 {
		t.Fatalf("TileSum() after two Advances = %d, want 10", d.TileSum())
	}
}

// TestAdvanceParallelMatchesSerial pins the invariant that the BFS result
// does not depend on how many goroutines generate it: a single worker and
// GOMAXPROCS workers must reach the same per-layer counts, since Insert's
// CAS-based dedup makes the set of canonical boards produced independent
// of scheduling.
func TestAdvanceParallelMatchesSerial(t *testing.T) {
	const steps = 3

	run := func(workers int) []uint64 {
		d := NewDriver(Config{InitialCapacity: 64, GrowthFactor: 4, Workers: workers})
		if err := d.Seed(); err != nil {
			t.Fatal(err)
		}
		defer d.Close()

		counts := make([]uint64, steps)
		for i := 0; i < steps; i++ {
			stats, err := d.Advance(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			counts[i] = stats.Count
		}
		return counts
	}

	serial := run(1)
	parallel := run(runtime.NumCPU())

	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("step %d: Workers=1 count=%d, Workers=%d count=%d", i, serial[i], runtime.NumCPU(), parallel[i])
		}
	}
}

func TestAdvanceRespectsCancelledContext(t *testing.T) {
	d := NewDriver(Config{InitialCapacity: 64})
	if err := d.Seed(); err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Advance(ctx); err == nil {
		t.Fatal("expected Advance to report the cancelled context")
	}
}
