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

package dedup

import "golang.org/x/exp/slices"

// Duplicate records a codepoint covered by two or more fonts with the
// same glyph shape (or, in Unicode-only mode, regardless of shape).
// Fonts are given in priority order; the first one retains the glyph.
type Duplicate struct {
	Codepoint rune
	Fonts     []string
}

// Variant records a codepoint whose glyph shape differs between the fonts
// containing it.  Groups partitions the containing fonts into classes of
// identical outline; two or more groups mean a genuine design difference,
// so the codepoint is retained in every font.
//
// If Unresolved is set, the codepoint was never analyzed because the
// codepoint limit was reached; it is retained everywhere and Groups is nil.
type Variant struct {
	Codepoint  rune
	Groups     [][]string
	Unresolved bool
}

// Warning records a non-fatal per-glyph problem, currently always a
// failure to produce an outline digest.  The affected font was placed in
// its own equality class, so the codepoint leans toward retention.
type Warning struct {
	FontID    string
	Codepoint rune
	Err       error
}

// Plan is the retention plan produced by the engine.  For every input
// font, Keep and Remove partition the font's original codepoint set:
// the two lists are disjoint, their union is the original coverage, and
// codepoints outside the candidate set are always kept.  A Plan is not
// modified after it has been returned.
type Plan struct {
	Keep   map[string][]rune
	Remove map[string][]rune

	// Duplicates lists codepoints eligible for removal.  In shape-aware
	// mode only true duplicates appear here; shape variants are reported
	// in Variants instead.
	Duplicates []Duplicate

	// Variants lists protected shape variants.  Empty in Unicode-only mode.
	Variants []Variant

	// Warnings lists per-glyph digest failures from shape-aware mode.
	Warnings []Warning
}

// verdict is the per-codepoint removal decision.
type verdict struct {
	keeper  int  // input position of the font that retains the codepoint
	protect bool // retained in every containing font
}

// assemble builds the retention plan from the per-codepoint verdicts.
// Codepoints without a verdict are kept wherever they occur.
func (e *engine) assemble(verdicts map[rune]verdict) *Plan {
	plan := &Plan{
		Keep:   make(map[string][]rune, len(e.fonts)),
		Remove: make(map[string][]rune, len(e.fonts)),
	}
	for pos, f := range e.fonts {
		cps := make([]rune, 0, len(e.member[pos]))
		for cp := range e.member[pos] {
			cps = append(cps, cp)
		}
		slices.Sort(cps)

		keep := make([]rune, 0, len(cps))
		remove := make([]rune, 0)
		for _, cp := range cps {
			v, ok := verdicts[cp]
			if ok && !v.protect && v.keeper != pos {
				remove = append(remove, cp)
			} else {
				keep = append(keep, cp)
			}
		}
		plan.Keep[f.ID] = keep
		plan.Remove[f.ID] = remove
	}
	return plan
}
