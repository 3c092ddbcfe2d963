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

//go:build linux

package foldedset

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// hugePageThresholdWords is the size, in 64-bit words, above which the
// arena attempts a MAP_HUGETLB backing before falling back to normal
// pages -- spec.md §4.3 "huge pages attempted when the region is large".
const hugePageThresholdWords = 1 << 20 // 8 MiB of slots

// mmapArena backs a Set with an anonymous virtual-memory mapping,
// resized in place via mremap on compaction (spec.md §4.3, §4.5).
type mmapArena struct {
	mem []byte
}

func newArenaImpl(words int) (arena, error) {
	a := &mmapArena{}
	if err := a.mapNew(words); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *mmapArena) mapNew(words int) error {
	size := bytesFor(words)

	flags := unix.MAP_PRIVATE | unix.MAP_ANON
	if words >= hugePageThresholdWords {
		hugeFlags := flags | unix.MAP_HUGETLB
		mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, hugeFlags)
		if err == nil {
			a.mem = mem
			return nil
		}
		// Huge pages unavailable or insufficient; fall back to normal pages.
	}

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, flags)
	if err != nil {
		return errors.Wrap(err, "foldedset: mmap failed")
	}
	a.mem = mem
	return nil
}

func (a *mmapArena) slots() []uint64 {
	if len(a.mem) == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&a.mem[0])), len(a.mem)/8)
}

func (a *mmapArena) resize(newWords int) error {
	oldSize := len(a.mem)
	newSize := bytesFor(newWords)
	if oldSize == 0 {
		return a.mapNew(newWords)
	}

	mem, err := unix.Mremap(a.mem, newSize, unix.MREMAP_MAYMOVE)
	if err != nil {
		return errors.Wrap(err, "foldedset: mremap failed")
	}
	a.mem = mem
	return nil
}

func (a *mmapArena) release() {
	if len(a.mem) == 0 {
		return
	}
	unix.Munmap(a.mem)
	a.mem = nil
}

func bytesFor(words int) int {
	size := words * 8
	if size < 4096 {
		size = 4096
	}
	return size
}
