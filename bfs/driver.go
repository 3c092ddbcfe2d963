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

// Package bfs implements the breadth-first driver of spec.md §4.4: it
// advances three rotating foldedset.Sets layer by layer, each layer holding
// every canonical board reachable at a fixed tile sum, two tile-sum steps
// apart from its neighbours.
package bfs

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"

	"crypto/sha256"

	"github.com/anematode/solve2048/board"
	"github.com/anematode/solve2048/foldedset"
)

// Config controls capacity growth and side effects of a Driver.
type Config struct {
	// InitialCapacity is a floor under every layer's allocated capacity,
	// applied before CapacityFloor/CapacityCeiling. Useful when the
	// caller knows layers will grow past whatever a bucket-size or
	// previous-layer-size estimate would otherwise allocate.
	InitialCapacity int
	GrowthFactor    float64
	CapacityFloor   int
	CapacityCeiling int

	// Workers caps the goroutine fan-out used both by the driver's own
	// per-layer generation fan-out (Advance) and by every layer's
	// foldedset.Set for Count/Iterate/Compact. Zero (the default) falls
	// back to runtime.GOMAXPROCS(0).
	Workers int

	// HashKeySeed, if non-empty, is stretched via pbkdf2 into the AES key
	// every layer's Set uses, so two runs with the same seed place boards
	// into slots identically (useful for reproducing a run's layout).
	// Left empty, each Set falls back to foldedset's built-in default key.
	HashKeySeed []byte

	// Schedule decides which completed layers trigger OnLayer.
	Schedule *Schedule
	// OnLayer, if non-nil, is called once a layer finishes (after
	// compaction) when Schedule matches its tile sum. Typically wired to
	// dump.Write by the caller.
	OnLayer func(tileSum uint32, s *foldedset.Set) error
}

func (c Config) capacityFor(hint uint64) int {
	n := int(float64(hint) * c.growthFactor())
	if n < c.initialCapacity() {
		n = c.initialCapacity()
	}
	if c.CapacityFloor > 0 && n < c.CapacityFloor {
		n = c.CapacityFloor
	}
	if c.CapacityCeiling > 0 && n > c.CapacityCeiling {
		n = c.CapacityCeiling
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (c Config) growthFactor() float64 {
	if c.GrowthFactor <= 0 {
		return 4.0
	}
	return c.GrowthFactor
}

// initialCapacity returns the configured floor, or a sane default if the
// caller left it unset.
func (c Config) initialCapacity() int {
	if c.InitialCapacity < 1 {
		return 1024
	}
	return c.InitialCapacity
}

// LayerStats summarises one completed layer, including the max-tile census
// supplemented from the reference implementation's per_thread_census
// (main.cpp), which the distilled spec omits.
type LayerStats struct {
	TileSum uint32
	Count   uint64
	Elapsed time.Duration
	Rate    float64
	MaxTile [16]uint64
}

// Driver owns the three rotating layers L-2, L, L+2 and the scratch state
// needed to advance them.
type Driver struct {
	cfg     Config
	hashKey [16]byte

	prev, cur, next *foldedset.Set
	tileSum         uint32 // tile sum of cur

	bufPool sync.Pool
}

// NewDriver derives the hash key (if a seed was supplied) and returns an
// unseeded Driver; call Seed before Advance.
func NewDriver(cfg Config) *Driver {
	d := &Driver{cfg: cfg}
	if len(cfg.HashKeySeed) > 0 {
		derived := pbkdf2.Key(cfg.HashKeySeed, []byte("solve2048-foldedset"), 4096, 16, sha256.New)
		copy(d.hashKey[:], derived)
	}
	d.bufPool.New = func() interface{} { return board.NewSuccessorBuffer() }
	return d
}

func (d *Driver) newSet(tileSum uint32, capacity int) (*foldedset.Set, error) {
	return foldedset.New(foldedset.Config{
		TileSum:         tileSum,
		InitialCapacity: capacity,
		HashKey:         d.hashKey,
		Workers:         d.cfg.Workers,
	})
}

// Seed builds the three starting layers at tile sums 4, 6, and 8 (spec.md
// §4.4 "Seeds") from every two-tile placement, then completes the tile-sum
// 6 layer with the one-off successors(layer4, spawn=1) contribution that
// the general recurrence can't supply (there is no tile-sum-2 layer to
// draw it from).
func (d *Driver) Seed() error {
	starts := StartingPositions()
	buckets := map[uint32][]board.Board{}
	for _, b := range starts {
		ts := board.TileSum(b)
		buckets[ts] = append(buckets[ts], b)
	}

	cap4 := d.cfg.capacityFor(uint64(len(buckets[4])))
	cap6 := d.cfg.capacityFor(uint64(len(buckets[6])))
	cap8 := d.cfg.capacityFor(uint64(len(buckets[8])))

	prev, err := d.newSet(4, cap4)
	if err != nil {
		return errors.Wrap(err, "bfs: seeding tile sum 4")
	}
	cur, err := d.newSet(6, cap6)
	if err != nil {
		return errors.Wrap(err, "bfs: seeding tile sum 6")
	}
	next, err := d.newSet(8, cap8)
	if err != nil {
		return errors.Wrap(err, "bfs: seeding tile sum 8")
	}

	for _, b := range buckets[4] {
		prev.Insert(b)
	}
	for _, b := range buckets[6] {
		cur.Insert(b)
	}
	for _, b := range buckets[8] {
		next.Insert(b)
	}

	d.prev, d.cur, d.next = prev, cur, next
	d.tileSum = 6

	d.generateInto(d.prev, d.cur, 1)
	return nil
}

// generateInto iterates every board of src, spawns a tile of the given
// value into each reachable empty cell and slides, and inserts every
// resulting canonical candidate into dst. Each goroutine driving
// src.Iterate's fan-out gets its own pooled successor buffer, since
// Iterate calls its callback concurrently.
func (d *Driver) generateInto(src, dst *foldedset.Set, spawn uint8) {
	src.Iterate(func(b board.Board) {
		buf := d.bufPool.Get().(*board.SuccessorBuffer)
		board.Successors(b, spawn, buf)
		for _, c := range buf.Boards() {
			dst.Insert(c)
		}
		d.bufPool.Put(buf)
	})
}

func census(s *foldedset.Set) [16]uint64 {
	var counts [16]uint64
	s.Iterate(func(b board.Board) {
		atomic.AddUint64(&counts[board.MaxTile(b)], 1)
	})
	return counts
}

// Advance runs one BFS step: completes the L+2 layer from successors of
// L-2 (spawn a 4-tile) and L (spawn a 2-tile), compacts it, reports stats
// for the now-fully-built L layer, then rotates L-2:=L, L:=L+2 and
// allocates a fresh empty L+2 (spec.md §4.4).
func (d *Driver) Advance(ctx context.Context) (LayerStats, error) {
	if err := ctx.Err(); err != nil {
		return LayerStats{}, err
	}

	started := time.Now()

	// The two generation tasks (successors of L-2 spawning a 4-tile,
	// successors of L spawning a 2-tile) are independent and are chunked
	// as a 2-item range across cfg.Workers goroutines: Workers=1 runs both
	// in series on a single goroutine, Workers>=2 runs them in parallel.
	parallelFor(2, d.workerCount(), func(_, lo, hi int) {
		for item := lo; item < hi; item++ {
			switch item {
			case 0:
				d.generateInto(d.prev, d.next, 2)
			case 1:
				d.generateInto(d.cur, d.next, 1)
			}
		}
	})

	completedCount := d.cur.Count()
	maxTile := census(d.cur)

	if err := d.next.Compact(); err != nil {
		return LayerStats{}, errors.Wrap(err, "bfs: compacting layer")
	}

	stats := LayerStats{
		TileSum: d.cur.TileSum(),
		Count:   completedCount,
		Elapsed: time.Since(started),
		MaxTile: maxTile,
	}
	if secs := stats.Elapsed.Seconds(); secs > 0 {
		stats.Rate = float64(stats.Count) / secs
	}

	if d.cfg.OnLayer != nil && d.cfg.Schedule.Matches(stats.TileSum) {
		if err := d.cfg.OnLayer(stats.TileSum, d.cur); err != nil {
			return stats, errors.Wrap(err, "bfs: layer callback")
		}
	}

	d.prev.Close()
	d.prev = d.cur
	d.cur = d.next
	d.tileSum += 2

	newCap := d.cfg.capacityFor(d.cur.Count())
	next, err := d.newSet(d.tileSum+2, newCap)
	if err != nil {
		return stats, errors.Wrap(err, "bfs: allocating next layer")
	}
	d.next = next

	return stats, nil
}

// workerCount returns the configured fan-out, falling back to
// runtime.GOMAXPROCS(0) when the caller left Config.Workers unset.
func (d *Driver) workerCount() int {
	if d.cfg.Workers > 0 {
		return d.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// TileSum returns the tile sum of the currently-complete middle layer.
func (d *Driver) TileSum() uint32 { return d.tileSum }

// CurrentLayer returns the currently-complete middle layer, for read-only
// inspection (e.g. a final dump after the run stops).
func (d *Driver) CurrentLayer() *foldedset.Set { return d.cur }

// Close releases all three layers' backing memory.
func (d *Driver) Close() {
	for _, s := range []*foldedset.Set{d.prev, d.cur, d.next} {
		if s != nil {
			s.Close()
		}
	}
}
