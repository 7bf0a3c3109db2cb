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

// Package dedup decides which glyphs each font in a prioritized collection
// may keep and which it must discard.
//
// Several fonts bundled with the same application often cover overlapping
// character ranges, storing the same glyph more than once.  Given the
// codepoint coverage of each font, the engine computes a retention plan:
// every codepoint covered by two or more fonts is kept only in the highest
// priority font and removed from the others.  Inclusion and exclusion
// ranges narrow the set of codepoints that take part, and an optional
// shape-aware mode protects codepoints whose outlines actually differ
// between fonts, so that no uniquely designed glyph is ever lost.
//
// The engine is a pure function of its inputs.  It neither opens fonts nor
// writes them; parsing and subsetting are performed by the fontinfo and
// subset packages.
package dedup

import (
	"golang.org/x/exp/slices"

	"seehuhn.de/go/fontdedup/cprange"
	"seehuhn.de/go/fontdedup/shape"
)

// Font describes one font offered for deduplication: an opaque identifier
// (normally the file path) and the codepoints the font's character map
// covers.  The engine never modifies a Font.
type Font struct {
	ID         string
	Codepoints []rune
}

// DigestFunc returns the outline digest for one glyph of one font.
// It returns an error wrapping [shape.ErrUnavailable] if no digest can be
// produced; the engine then treats the comparison as inconclusive and
// biases toward retention.
type DigestFunc func(fontID string, cp rune) (shape.Digest, error)

// Options control a single engine invocation.  The zero value requests
// default behavior: input order as priority, all codepoints eligible, no
// limit on shape analysis.
type Options struct {
	// Priority lists font IDs from highest to lowest priority.  Fonts not
	// listed keep their relative input order behind the listed ones.
	// An empty list means the input order is the priority order.
	Priority []string

	// Include restricts deduplication to the given codepoint ranges.
	// An empty list means all codepoints are eligible.
	Include []cprange.Range

	// Exclude protects the given codepoint ranges from deduplication,
	// overriding Include.
	Exclude []cprange.Range

	// SimilarityThreshold must be in [0, 1].  The current comparison is
	// strict equality, so the value does not affect the outcome; it is
	// validated and kept for forward compatibility.
	SimilarityThreshold float64

	// CodepointLimit bounds the number of codepoints analyzed in
	// shape-aware mode.  Codepoints beyond the limit are conservatively
	// retained everywhere.  Zero means no limit.
	CodepointLimit int
}

// engine holds the per-invocation state.  Fonts are identified internally
// by their position in the input list, so the hot loops index slices
// instead of hashing ID strings.
type engine struct {
	fonts []*Font
	index map[string]int // font ID -> input position

	order []int // rank -> input position, rank 0 is highest priority

	member []map[rune]bool // input position -> codepoint set

	cand *cprange.Set
	opt  *Options
}

func newEngine(fonts []*Font, opt *Options) (*engine, error) {
	if opt == nil {
		opt = &Options{}
	}
	if len(fonts) == 0 {
		return nil, configErrorf("no fonts given")
	}
	if t := opt.SimilarityThreshold; t < 0 || t > 1 {
		return nil, configErrorf("similarity threshold %g outside [0, 1]", t)
	}

	index := make(map[string]int, len(fonts))
	member := make([]map[rune]bool, len(fonts))
	for pos, f := range fonts {
		if _, seen := index[f.ID]; seen {
			return nil, configErrorf("duplicate font %q", f.ID)
		}
		index[f.ID] = pos

		set := make(map[rune]bool, len(f.Codepoints))
		for _, cp := range f.Codepoints {
			set[cp] = true
		}
		member[pos] = set
	}

	cand, err := cprange.New(opt.Include, opt.Exclude)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	order, err := resolvePriority(fonts, index, opt.Priority)
	if err != nil {
		return nil, err
	}

	e := &engine{
		fonts:  fonts,
		index:  index,
		order:  order,
		member: member,
		cand:   cand,
		opt:    opt,
	}
	return e, nil
}

// resolvePriority turns an explicit priority list into a total order over
// the input fonts.  Listed fonts come first, in list order; unlisted fonts
// follow in their original input order.
func resolvePriority(fonts []*Font, index map[string]int, explicit []string) ([]int, error) {
	order := make([]int, 0, len(fonts))
	listed := make([]bool, len(fonts))
	for _, id := range explicit {
		pos, ok := index[id]
		if !ok {
			return nil, &ConfigError{Err: fmtErrUnknownFont(id)}
		}
		if listed[pos] {
			return nil, configErrorf("font %q listed twice in the priority list", id)
		}
		listed[pos] = true
		order = append(order, pos)
	}
	for pos := range fonts {
		if !listed[pos] {
			order = append(order, pos)
		}
	}
	return order, nil
}

// findDuplicates returns the candidate codepoints covered by at least two
// fonts, in ascending order, together with the containing fonts of each,
// in priority order.  The result depends only on set membership, not on
// the order of the input fonts.
func (e *engine) findDuplicates() ([]rune, map[rune][]int) {
	all := e.cand.All()
	count := make(map[rune]int)
	for _, set := range e.member {
		for cp := range set {
			if all || e.cand.Contains(cp) {
				count[cp]++
			}
		}
	}

	var dups []rune
	for cp, n := range count {
		if n >= 2 {
			dups = append(dups, cp)
		}
	}
	slices.Sort(dups)

	containing := make(map[rune][]int, len(dups))
	for _, cp := range dups {
		var ff []int
		for _, pos := range e.order {
			if e.member[pos][cp] {
				ff = append(ff, pos)
			}
		}
		containing[cp] = ff
	}
	return dups, containing
}

func (e *engine) ids(positions []int) []string {
	ids := make([]string, len(positions))
	for i, pos := range positions {
		ids[i] = e.fonts[pos].ID
	}
	return ids
}
