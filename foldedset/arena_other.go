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

//go:build !linux

package foldedset

// plainArena is the non-Linux fallback: a regular Go heap allocation
// instead of an anonymous mmap region. Resizing copies into a fresh
// slice rather than remapping in place, since only Linux exposes
// mremap. Functionally equivalent; loses the avoid-a-copy benefit that
// mremap(MREMAP_MAYMOVE) can sometimes provide.
type plainArena struct {
	words []uint64
}

func newArenaImpl(words int) (arena, error) {
	if words < 1 {
		words = 1
	}
	return &plainArena{words: make([]uint64, words)}, nil
}

func (a *plainArena) slots() []uint64 {
	return a.words
}

func (a *plainArena) resize(newWords int) error {
	if newWords < 1 {
		newWords = 1
	}
	fresh := make([]uint64, newWords)
	copy(fresh, a.words)
	a.words = fresh
	return nil
}

func (a *plainArena) release() {
	a.words = nil
}
