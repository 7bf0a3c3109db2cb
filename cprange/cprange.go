// seehuhn.de/go/fontdedup - a tool to deduplicate glyphs across font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cprange represents sets of Unicode codepoints as inclusive ranges.
//
// A [Set] combines a list of inclusion ranges with a list of exclusion
// ranges into a single membership predicate.  An empty inclusion list
// stands for all of Unicode; exclusion always wins over inclusion.
package cprange

import (
	"strconv"
	"strings"
)

// MaxCodepoint is the largest valid Unicode codepoint.
const MaxCodepoint = 0x10FFFF

// Range is a closed interval of Unicode codepoints.
type Range struct {
	Lo, Hi rune
}

// Contains reports whether c lies within the range.
func (r Range) Contains(c rune) bool {
	return c >= r.Lo && c <= r.Hi
}

func (r Range) check() error {
	if r.Lo < 0 || r.Hi > MaxCodepoint {
		return &InvalidRangeError{Range: r, Reason: "codepoint outside 0..0x10FFFF"}
	}
	if r.Lo > r.Hi {
		return &InvalidRangeError{Range: r, Reason: "start is larger than end"}
	}
	return nil
}

// InvalidRangeError indicates a malformed codepoint range.
type InvalidRangeError struct {
	Text   string // the original text, if the range came from Parse
	Range  Range
	Reason string
}

func (err *InvalidRangeError) Error() string {
	if err.Text != "" {
		return "invalid codepoint range " + strconv.Quote(err.Text) + ": " + err.Reason
	}
	return "invalid codepoint range: " + err.Reason
}

// Parse parses a codepoint range of the form "lo-hi".  The two bounds are
// non-negative integers, either decimal or hexadecimal with a "0x" prefix,
// for example "0x4E00-0x9FFF" or "32-127".
func Parse(s string) (Range, error) {
	loText, hiText, ok := strings.Cut(s, "-")
	if !ok {
		return Range{}, &InvalidRangeError{Text: s, Reason: "missing \"-\" separator"}
	}
	lo, err := parseBound(loText)
	if err != nil {
		return Range{}, &InvalidRangeError{Text: s, Reason: "malformed start value"}
	}
	hi, err := parseBound(hiText)
	if err != nil {
		return Range{}, &InvalidRangeError{Text: s, Reason: "malformed end value"}
	}

	r := Range{Lo: lo, Hi: hi}
	if err := r.check(); err != nil {
		err.(*InvalidRangeError).Text = s
		return Range{}, err
	}
	return r, nil
}

func parseBound(s string) (rune, error) {
	s = strings.TrimSpace(s)
	base := 10
	if rest, ok := cutPrefixFold(s, "0x"); ok {
		s = rest
		base = 16
	}
	x, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, err
	}
	return rune(x), nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

// ParseAll parses a list of range strings.
func ParseAll(ss []string) ([]Range, error) {
	var rr []Range
	for _, s := range ss {
		r, err := Parse(s)
		if err != nil {
			return nil, err
		}
		rr = append(rr, r)
	}
	return rr, nil
}

// Set is a membership predicate over Unicode codepoints, built from
// inclusion and exclusion ranges.
type Set struct {
	include []Range
	exclude []Range
}

// New validates the given ranges and combines them into a Set.  If include
// is empty, the set contains all codepoints not covered by exclude.
func New(include, exclude []Range) (*Set, error) {
	for _, r := range include {
		if err := r.check(); err != nil {
			return nil, err
		}
	}
	for _, r := range exclude {
		if err := r.check(); err != nil {
			return nil, err
		}
	}
	s := &Set{
		include: append([]Range(nil), include...),
		exclude: append([]Range(nil), exclude...),
	}
	return s, nil
}

// Contains reports whether c is a member of the set.
func (s *Set) Contains(c rune) bool {
	if c < 0 || c > MaxCodepoint {
		return false
	}
	for _, r := range s.exclude {
		if r.Contains(c) {
			return false
		}
	}
	if len(s.include) == 0 {
		return true
	}
	for _, r := range s.include {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// All reports whether the set admits every valid codepoint.
func (s *Set) All() bool {
	return len(s.include) == 0 && len(s.exclude) == 0
}
