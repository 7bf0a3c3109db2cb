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

// Package fontinfo reads font files and extracts the data the
// deduplication engine needs: the codepoint coverage of each font and,
// for shape-aware analysis, outline digests of individual glyphs.
//
// This is the only place where font files are parsed.  The dedup package
// never sees the fonts themselves, only plain values extracted here.
package fontinfo

import (
	"fmt"
	"os"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"

	"seehuhn.de/go/fontdedup/cprange"
	"seehuhn.de/go/fontdedup/dedup"
)

// Info describes one font file.
type Info struct {
	Path       string
	FamilyName string
	UnitsPerEm uint16
	NumGlyphs  int
	Ascent     funit.Int16
	Descent    funit.Int16

	// Codepoints lists the Unicode codepoints the font's character map
	// resolves to a glyph, in ascending order.
	Codepoints []rune
}

// Read parses the font file fname and extracts its metadata.
func Read(fname string) (*Info, error) {
	f, err := readFont(fname)
	if err != nil {
		return nil, err
	}
	return New(fname, f)
}

// New extracts metadata from an already parsed font.
// The id is used as the font identifier in place of a file name.
func New(id string, f *sfnt.Font) (*Info, error) {
	subtable, err := bestCMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	info := &Info{
		Path:       id,
		FamilyName: f.FamilyName,
		UnitsPerEm: f.UnitsPerEm,
		NumGlyphs:  f.NumGlyphs(),
		Ascent:     f.Ascent,
		Descent:    f.Descent,
		Codepoints: codepoints(subtable),
	}
	return info, nil
}

// ReadAll parses all given font files.
func ReadAll(fnames []string) ([]*Info, error) {
	var infos []*Info
	for _, fname := range fnames {
		info, err := Read(fname)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Fonts converts font metadata into engine inputs.
func Fonts(infos []*Info) []*dedup.Font {
	fonts := make([]*dedup.Font, len(infos))
	for i, info := range infos {
		fonts[i] = &dedup.Font{
			ID:         info.Path,
			Codepoints: info.Codepoints,
		}
	}
	return fonts
}

func readFont(fname string) (*sfnt.Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	f, err := sfnt.Read(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: parsing font: %w", fname, err)
	}
	return f, nil
}

func bestCMap(f *sfnt.Font) (cmap.Subtable, error) {
	if f.CMapTable == nil {
		return nil, fmt.Errorf("font has no character map")
	}
	subtable, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("no usable character map: %w", err)
	}
	return subtable, nil
}

// codepoints enumerates the codepoints the subtable maps to a glyph.
func codepoints(subtable cmap.Subtable) []rune {
	low, high := subtable.CodeRange()
	if low < 0 {
		low = 0
	}
	if high > cprange.MaxCodepoint {
		high = cprange.MaxCodepoint
	}

	var cc []rune
	for r := low; r <= high; r++ {
		if subtable.Lookup(r) != 0 {
			cc = append(cc, r)
		}
	}
	return cc
}
