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

import "context"

// Deduplicate computes a retention plan from codepoint coverage alone.
// Every candidate codepoint covered by two or more fonts is kept in the
// highest priority font containing it and removed from the others.
//
// A nil opt requests default behavior.  On configuration errors no plan
// is produced.
func Deduplicate(ctx context.Context, fonts []*Font, opt *Options) (*Plan, error) {
	e, err := newEngine(fonts, opt)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dups, containing := e.findDuplicates()

	verdicts := make(map[rune]verdict, len(dups))
	var records []Duplicate
	for _, cp := range dups {
		ff := containing[cp]
		verdicts[cp] = verdict{keeper: ff[0]}
		records = append(records, Duplicate{Codepoint: cp, Fonts: e.ids(ff)})
	}

	plan := e.assemble(verdicts)
	plan.Duplicates = records
	return plan, nil
}

// DeduplicateShapes computes a retention plan with shape analysis.  Before
// a duplicate codepoint is assigned to its highest priority font, the
// outline digests of all containing fonts are compared.  Codepoints whose
// outlines differ anywhere are shape variants: they are kept in every font
// and reported in Plan.Variants.  Only codepoints whose outlines agree
// everywhere follow the priority rule, so for fixed inputs the removals
// are always a subset of what [Deduplicate] would remove.
//
// If opt.CodepointLimit is positive, at most that many duplicate
// codepoints (in ascending order) are analyzed; the remainder is retained
// everywhere and reported as unresolved variants.  If ctx is cancelled
// the run aborts with the context error and no plan is returned.
func DeduplicateShapes(ctx context.Context, fonts []*Font, digest DigestFunc, opt *Options) (*Plan, error) {
	if digest == nil {
		return nil, configErrorf("no digest source given")
	}
	e, err := newEngine(fonts, opt)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dups, containing := e.findDuplicates()

	analyze := dups
	var unresolved []rune
	if limit := e.opt.CodepointLimit; limit > 0 && len(dups) > limit {
		analyze = dups[:limit]
		unresolved = dups[limit:]
	}

	classes, err := e.classifyAll(ctx, digest, analyze, containing)
	if err != nil {
		return nil, err
	}

	verdicts := make(map[rune]verdict, len(dups))
	var duplicates []Duplicate
	var variants []Variant
	var warnings []Warning
	for _, c := range classes {
		warnings = append(warnings, c.warnings...)
		if c.isVariant() {
			verdicts[c.cp] = verdict{protect: true}
			groups := make([][]string, len(c.groups))
			for i, g := range c.groups {
				groups[i] = e.ids(g)
			}
			variants = append(variants, Variant{Codepoint: c.cp, Groups: groups})
		} else {
			ff := containing[c.cp]
			verdicts[c.cp] = verdict{keeper: ff[0]}
			duplicates = append(duplicates, Duplicate{Codepoint: c.cp, Fonts: e.ids(ff)})
		}
	}
	for _, cp := range unresolved {
		verdicts[cp] = verdict{protect: true}
		variants = append(variants, Variant{Codepoint: cp, Unresolved: true})
	}

	plan := e.assemble(verdicts)
	plan.Duplicates = duplicates
	plan.Variants = variants
	plan.Warnings = warnings
	return plan, nil
}
