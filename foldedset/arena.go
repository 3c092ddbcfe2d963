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

package foldedset

// arena owns the backing store of 64-bit slot words for a Set. The
// concrete implementation (arena_linux.go, arena_other.go) decides how
// the memory is obtained: anonymous mmap with optional huge pages on
// Linux, or a plain Go allocation elsewhere.
type arena interface {
	// slots returns the backing words as a []uint64 of the given length.
	slots() []uint64
	// resize changes the arena to hold newWords words, preserving the
	// first min(old,new) words' content. The Linux arena never holds fewer
	// than 512 words (one 4 KiB page), so it may keep more than newWords.
	// Used by Compact (gorge).
	resize(newWords int) error
	// release returns the memory to the OS. Safe to call on a
	// zero-value/already-released arena.
	release()
}

// newArena allocates a fresh arena of the given word count, zero-filled.
func newArena(words int) (arena, error) {
	return newArenaImpl(words)
}
