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

package bfs

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Schedule decides which completed layers get a compressed dump written to
// disk (spec.md §6), parsed from an operator-supplied expression the same
// shape as the teacher's multi-port flag (generic.ParseMultiPort): a
// comma-free single term, one of "all", "none", or "mod:N" meaning "every
// tile sum that is a multiple of N".
type Schedule struct {
	all    bool
	modulo uint32
}

var scheduleModRe = regexp.MustCompile(`^mod:([0-9]+)$`)

// ParseSchedule parses a dump-schedule expression. An empty string means
// "none".
func ParseSchedule(expr string) (*Schedule, error) {
	switch expr {
	case "", "none":
		return &Schedule{}, nil
	case "all":
		return &Schedule{all: true}, nil
	}

	m := scheduleModRe.FindStringSubmatch(expr)
	if m == nil {
		return nil, errors.Errorf("bfs: invalid dump schedule %q, want \"all\", \"none\", or \"mod:N\"", expr)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return nil, errors.Errorf("bfs: invalid dump schedule modulus in %q", expr)
	}
	return &Schedule{modulo: uint32(n)}, nil
}

// Matches reports whether the layer at the given tile sum should be
// dumped.
func (s *Schedule) Matches(tileSum uint32) bool {
	if s == nil {
		return false
	}
	if s.all {
		return true
	}
	if s.modulo == 0 {
		return false
	}
	return tileSum%s.modulo == 0
}
