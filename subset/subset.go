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

// Package subset applies a retention plan to font files: for each font it
// produces a new font which contains only the glyphs for the codepoints
// the plan keeps, with a rebuilt character map.
package subset

import (
	"fmt"
	"sort"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// Apply returns a copy of f which contains only the glyphs needed for the
// codepoints in keep, plus the .notdef glyph.  The original font is not
// modified.
func Apply(f *sfnt.Font, keep []rune) (*sfnt.Font, error) {
	if f.CMapTable == nil {
		return nil, fmt.Errorf("font has no character map")
	}
	subtable, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("no usable character map: %w", err)
	}

	cps := make([]rune, len(keep))
	copy(cps, keep)
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })

	// Gather the glyphs to keep.  Glyph 0 (.notdef) always comes first.
	// Several codepoints can share a glyph, so old glyph IDs are deduplicated.
	glyphs := []glyph.ID{0}
	newGID := map[glyph.ID]glyph.ID{0: 0}
	mapping := make(map[rune]glyph.ID, len(cps))
	for _, cp := range cps {
		origGID := subtable.Lookup(cp)
		if origGID == 0 {
			return nil, fmt.Errorf("codepoint U+%04X is not mapped", cp)
		}
		gid, ok := newGID[origGID]
		if !ok {
			gid = glyph.ID(len(glyphs))
			newGID[origGID] = gid
			glyphs = append(glyphs, origGID)
		}
		mapping[cp] = gid
	}

	// Subsetting invalidates the tables which refer to glyph IDs,
	// so they are dropped before the glyphs are renumbered.
	work := *f
	work.CMapTable = nil
	work.Gdef = nil
	work.Gsub = nil
	work.Gpos = nil
	res := work.Subset(glyphs)

	res.CMapTable = makeCMap(cps, mapping)
	return res, nil
}

// makeCMap builds a character map for the subset font.  Codepoints in the
// basic multilingual plane go into a format 4 subtable; if codepoints
// beyond U+FFFF survive, a format 12 subtable covering everything is
// stored as well.
func makeCMap(cps []rune, mapping map[rune]glyph.ID) cmap.Table {
	format4 := cmap.Format4{}
	hasSupplementary := false
	for _, cp := range cps {
		if cp > 0xFFFF {
			hasSupplementary = true
			continue
		}
		format4[uint16(cp)] = mapping[cp]
	}

	table := cmap.Table{
		{PlatformID: 3, EncodingID: 1}: format4.Encode(0),
	}
	if hasSupplementary {
		table[cmap.Key{PlatformID: 3, EncodingID: 10}] = encodeFormat12(cps, mapping)
	}
	return table
}

// encodeFormat12 encodes a format 12 cmap subtable covering all of cps.
// The codepoints must be sorted.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
func encodeFormat12(cps []rune, mapping map[rune]glyph.ID) []byte {
	type segment struct {
		startCode rune
		endCode   rune
		startGID  glyph.ID
	}
	var segments []segment
	for _, cp := range cps {
		gid := mapping[cp]
		n := len(segments)
		if n > 0 {
			last := &segments[n-1]
			if cp == last.endCode+1 && gid == last.startGID+glyph.ID(cp-last.startCode) {
				last.endCode = cp
				continue
			}
		}
		segments = append(segments, segment{startCode: cp, endCode: cp, startGID: gid})
	}

	l := uint32(16 + len(segments)*12)
	out := make([]byte, l)
	copy(out, []byte{
		0, 12, 0, 0,
		byte(l >> 24), byte(l >> 16), byte(l >> 8), byte(l),
		0, 0, 0, 0,
	})
	n := len(segments)
	out[12] = byte(n >> 24)
	out[13] = byte(n >> 16)
	out[14] = byte(n >> 8)
	out[15] = byte(n)
	for i, seg := range segments {
		base := 16 + i*12
		out[base] = byte(seg.startCode >> 24)
		out[base+1] = byte(seg.startCode >> 16)
		out[base+2] = byte(seg.startCode >> 8)
		out[base+3] = byte(seg.startCode)
		out[base+4] = byte(seg.endCode >> 24)
		out[base+5] = byte(seg.endCode >> 16)
		out[base+6] = byte(seg.endCode >> 8)
		out[base+7] = byte(seg.endCode)
		out[base+10] = byte(seg.startGID >> 8)
		out[base+11] = byte(seg.startGID)
	}
	return out
}
