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

// Package foldedset implements the lock-free, open-addressed hash set of
// spec.md §4.3: a concurrent set of canonical 2048 board positions, keyed
// by their folded form. Each logical slot is a single atomically-updated
// 64-bit word: the low 58 bits hold the folded key (the board shifted
// right by one nibble, dropping cell 0 -- always recoverable from the
// set's tile sum) and the high 6 bits are a bitset of which of the up to
// six permutations of that key's low tiles are present, so one slot can
// hold several logically distinct boards. This packing is lossless only
// because every canonical board's cell 15 is bounded to {0,1,2} (spec.md
// §3.2): shifting right by 4 moves cell 15's value into bits 56-57 of the
// key, and since that value never needs more than 2 bits, bits 58-63 are
// always free for the permutation bitset without truncating real data.
package foldedset

import (
	"math/bits"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/anematode/solve2048/board"
	"github.com/anematode/solve2048/fold"
)

const (
	// keyBits is the width of the folded key occupying the low bits of
	// every slot word; the remaining 64-keyBits bits hold the permutation
	// bitset.
	keyBits = 58
	keyMask = uint64(1)<<keyBits - 1
)

// Set is a concurrent, symmetry-folded hash set of canonical boards
// sharing one fixed tile sum. Inserts are safe to call concurrently with
// other inserts; Contains/Count/Iterate must not overlap with inserts or
// with each other's writers (Compact, Take), per spec.md §4.3/§5's phase
// discipline.
type Set struct {
	tileSum  uint32
	capacity int
	workers  int
	arena    arena
	hash     *keyedHash
}

// Config controls how a Set is constructed.
type Config struct {
	TileSum         uint32
	InitialCapacity int
	// HashKey, if non-zero, overrides the default fixed AES key. Driver
	// callers derive one from an operator-supplied seed (see
	// bfs.NewDriver); tests leave it zero to get a deterministic default.
	HashKey [16]byte
	// Workers caps the goroutine fan-out used by Count/Iterate/Compact.
	// Zero (the default) falls back to runtime.GOMAXPROCS(0).
	Workers int
}

// New allocates a Set with the given tile sum and initial capacity (in
// slots).
func New(cfg Config) (*Set, error) {
	if cfg.InitialCapacity < 1 {
		cfg.InitialCapacity = 1
	}
	key := cfg.HashKey
	if key == ([16]byte{}) {
		key = defaultHashKey
	}
	h, err := newKeyedHash(key)
	if err != nil {
		return nil, errors.Wrap(err, "foldedset: building keyed hash")
	}
	a, err := newArena(cfg.InitialCapacity)
	if err != nil {
		return nil, errors.Wrap(err, "foldedset: allocating arena")
	}
	return &Set{
		tileSum:  cfg.TileSum,
		capacity: cfg.InitialCapacity,
		workers:  cfg.Workers,
		arena:    a,
		hash:     h,
	}, nil
}

// TileSum returns the immutable tile sum this set was constructed with.
func (s *Set) TileSum() uint32 { return s.tileSum }

// Capacity returns the slot count requested at construction, or the
// occupied-slot count left by the last Compact. The backing arena may hold
// more words than this (the Linux arena never maps less than 4 KiB).
func (s *Set) Capacity() int { return s.capacity }

// workerCount returns the configured fan-out, falling back to
// runtime.GOMAXPROCS(0) when the caller left Config.Workers unset.
func (s *Set) workerCount() int {
	if s.workers > 0 {
		return s.workers
	}
	return runtime.GOMAXPROCS(0)
}

func assertCanonical(b board.Board, tileSum uint32) {
	if !board.IsCanonical(b) {
		panic(errors.Errorf("foldedset: board %#x is not canonical", uint64(b)))
	}
	if got := board.TileSum(b); got != tileSum {
		panic(errors.Errorf("foldedset: board %#x has tile sum %d, want %d", uint64(b), got, tileSum))
	}
}

// Insert adds b to the set, returning true iff it was not already
// present. b must be canonical and have tile sum equal to s.TileSum();
// violating either is a caller bug and panics (spec.md §7, invariant
// violation).
func (s *Set) Insert(b board.Board) bool {
	assertCanonical(b, s.tileSum)

	sorted, permIndex := fold.Fold(b)
	key := (uint64(sorted) >> 4) & keyMask
	bit := uint64(1) << (keyBits + uint(permIndex))

	raw := s.arena.slots()
	capacity := uint64(len(raw))

	for {
		idx := s.hash.hash64(key) % capacity

		for {
			cur := atomic.LoadUint64(&raw[idx])
			if cur == 0 {
				if atomic.CompareAndSwapUint64(&raw[idx], 0, key|bit) {
					return true
				}
				break // slot changed under us; restart the whole probe
			}
			if cur&keyMask == key {
				return setBit(&raw[idx], bit)
			}
			idx++
			if idx == capacity {
				idx = 0
			}
		}
	}
}

// setBit ORs bit into *addr, returning true iff it was not already set.
func setBit(addr *uint64, bit uint64) bool {
	for {
		cur := atomic.LoadUint64(addr)
		if cur&bit != 0 {
			return false
		}
		if atomic.CompareAndSwapUint64(addr, cur, cur|bit) {
			return true
		}
	}
}

// Contains reports whether b is present in the set. Must not be called
// concurrently with Insert/Compact/Take.
func (s *Set) Contains(b board.Board) bool {
	sorted, permIndex := fold.Fold(b)
	key := (uint64(sorted) >> 4) & keyMask
	bit := uint64(1) << (keyBits + uint(permIndex))

	raw := s.arena.slots()
	capacity := uint64(len(raw))
	idx := s.hash.hash64(key) % capacity

	for {
		cur := raw[idx]
		if cur == 0 {
			return false
		}
		if cur&keyMask == key {
			return cur&bit != 0
		}
		idx++
		if idx == capacity {
			idx = 0
		}
	}
}

// workerRanges splits [0,n) into up to workers contiguous ranges.
func workerRanges(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		return nil
	}
	chunk := n / workers
	var ranges [][2]int
	start := 0
	for i := 0; i < workers; i++ {
		end := start + chunk
		if i == workers-1 {
			end = n
		}
		ranges = append(ranges, [2]int{start, end})
		start = end
	}
	return ranges
}

// Count returns the number of logically distinct boards in the set
// (population count of every slot's permutation bitset), computed in
// parallel across the backing arena.
func (s *Set) Count() uint64 {
	raw := s.arena.slots()
	n := len(raw)
	ranges := workerRanges(n, s.workerCount())

	partials := make([]uint64, len(ranges))
	parallelFor(ranges, func(i int) {
		var c uint64
		lo, hi := ranges[i][0], ranges[i][1]
		for j := lo; j < hi; j++ {
			c += uint64(bits.OnesCount64(raw[j] >> keyBits))
		}
		partials[i] = c
	})

	var total uint64
	for _, p := range partials {
		total += p
	}
	return total
}

// Iterate calls f once for every board present in the set, in no
// particular order. It is safe to call f concurrently from multiple
// goroutines (Iterate itself parallelises across the backing arena); f
// must not mutate the set.
func (s *Set) Iterate(f func(board.Board)) {
	raw := s.arena.slots()
	n := len(raw)
	ranges := workerRanges(n, s.workerCount())

	parallelFor(ranges, func(i int) {
		lo, hi := ranges[i][0], ranges[i][1]
		for j := lo; j < hi; j++ {
			s.iterateSlot(raw[j], f)
		}
	})
}

func (s *Set) iterateSlot(slot uint64, f func(board.Board)) {
	if slot == 0 {
		return
	}
	key := slot & keyMask
	permBits := slot >> keyBits

	sorted := board.Board(key << 4)

	upperSum := board.TileSum(sorted)
	recovered := s.tileSum - upperSum
	var firstNibble uint8
	if recovered != 0 {
		if bits.OnesCount32(recovered) != 1 {
			panic(errors.Errorf("foldedset: recovered low tile %d is not 0 or a power of two", recovered))
		}
		firstNibble = uint8(bits.TrailingZeros32(recovered))
	}
	sorted = board.SetTile(sorted, 0, firstNibble)

	for i := 0; i < 6; i++ {
		if permBits&(1<<uint(i)) != 0 {
			f(fold.Unfold(sorted, uint8(i)))
		}
	}
}

// Compact (the reference's "gorge") removes every empty slot from the
// backing arena and shrinks capacity to exactly the occupied count. After
// Compact returns, the set must be treated as read-only: inserts are no
// longer well-defined once slot positions no longer satisfy the probing
// invariant relative to the old capacity.
func (s *Set) Compact() error {
	raw := s.arena.slots()
	n := len(raw)
	ranges := workerRanges(n, s.workerCount())

	type liveRange struct{ start, end int }
	ends := make([]int, len(ranges))

	parallelFor(ranges, func(i int) {
		lo, hi := ranges[i][0], ranges[i][1]
		j := lo
		for k := lo; k < hi; k++ {
			if raw[k] != 0 {
				if j != k {
					raw[j] = raw[k]
				}
				j++
			}
		}
		ends[i] = j
	})

	live := make([]liveRange, len(ranges))
	for i, r := range ranges {
		live[i] = liveRange{r[0], ends[i]}
	}

	offset := 0
	for _, r := range live {
		length := r.end - r.start
		if length > 0 && r.start != offset {
			copy(raw[offset:offset+length], raw[r.start:r.end])
		}
		offset += length
	}
	// Clear the words past the live prefix: the arena may keep more words
	// than offset, and stale copies there would be iterated again.
	clear(raw[offset:])

	if err := s.arena.resize(offset); err != nil {
		return errors.Wrap(err, "foldedset: compacting")
	}
	s.capacity = offset
	return nil
}

// Take transfers ownership of rhs's backing arena, capacity, and hash
// into s, and leaves rhs empty (move-assignment, spec.md §4.3). Any
// arena s previously owned is released.
func (s *Set) Take(rhs *Set) {
	if s.arena != nil {
		s.arena.release()
	}
	s.tileSum = rhs.tileSum
	s.capacity = rhs.capacity
	s.arena = rhs.arena
	s.hash = rhs.hash

	rhs.arena = nil
	rhs.capacity = 0
}

// Close releases the set's backing arena.
func (s *Set) Close() {
	if s.arena != nil {
		s.arena.release()
		s.arena = nil
	}
}
