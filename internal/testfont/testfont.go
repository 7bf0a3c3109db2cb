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

// Package testfont creates small synthetic fonts for use in unit tests.
//
// Each glyph is a rectangle whose geometry is derived from a "shape seed":
// two fonts which map the same codepoint to the same seed have glyphs with
// identical outlines, while different seeds give visibly different glyphs.
// This makes it easy to construct the duplicate/variant situations the
// deduplication engine has to distinguish.
package testfont

import (
	"fmt"
	"sort"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/os2"
)

const (
	unitsPerEm = 1000

	ascent  = 800
	descent = -200

	glyphWidth = 600
)

// New creates a font containing one glyph for each codepoint in shapes,
// plus a .notdef glyph.  The map value is the shape seed for the glyph.
func New(familyName string, shapes map[rune]int) *sfnt.Font {
	cps := make([]rune, 0, len(shapes))
	for cp := range shapes {
		cps = append(cps, cp)
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })

	glyphs := []*cff.Glyph{
		cff.NewGlyph(".notdef", glyphWidth),
	}
	encoding := []glyph.ID{0}
	subtable := cmap.Format4{}
	for i, cp := range cps {
		gid := glyph.ID(i + 1)
		g := cff.NewGlyph(fmt.Sprintf("uni%04X", cp), glyphWidth)
		drawRect(g, shapes[cp])
		glyphs = append(glyphs, g)
		encoding = append(encoding, gid)
		if cp <= 0xFFFF {
			subtable[uint16(cp)] = gid
		}
	}

	outlines := &cff.Outlines{
		Glyphs: glyphs,
		Private: []*type1.PrivateDict{
			{
				BlueValues: []funit.Int16{-10, 0, 700, 710},
				BlueScale:  0.039625,
				BlueShift:  7,
				BlueFuzz:   1,
				StdHW:      20,
				StdVW:      20,
			},
		},
		FDSelect: func(gid glyph.ID) int { return 0 },
		Encoding: encoding,
	}

	cmapTable := cmap.Table{
		{PlatformID: 3, EncodingID: 1}: subtable.Encode(0),
	}

	return &sfnt.Font{
		FamilyName: familyName,
		Ascent:     ascent,
		Descent:    descent,
		LineGap:    200,
		CapHeight:  700,
		XHeight:    480,
		Outlines:   outlines,
		Width:      os2.WidthNormal,
		Weight:     os2.WeightMedium,
		IsRegular:  true,
		PermUse:    os2.PermInstall,
		UnitsPerEm: unitsPerEm,
		FontMatrix: matrix.Matrix{1.0 / unitsPerEm, 0, 0, 1.0 / unitsPerEm, 0, 0},
		CMapTable:  cmapTable,
	}
}

// drawRect adds a rectangle whose position and size depend on the seed.
func drawRect(g *cff.Glyph, seed int) {
	left := float64(50 + 10*(seed%8))
	bottom := float64(10*(seed%5) - 20)
	right := left + float64(300+20*(seed%7))
	top := bottom + float64(500+15*(seed%9))

	g.MoveTo(left, bottom)
	g.LineTo(right, bottom)
	g.LineTo(right, top)
	g.LineTo(left, top)
}
