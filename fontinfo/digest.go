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

package fontinfo

import (
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"

	"seehuhn.de/go/fontdedup/shape"
)

// DigestSource produces outline digests for the fonts of one engine run.
// The underlying fonts stay loaded for the lifetime of the source, so
// repeated digest requests for the same glyph return the same value.
//
// The Digest method can be used as a [seehuhn.de/go/fontdedup/dedup.DigestFunc].
type DigestSource struct {
	fonts map[string]*digestFont
}

type digestFont struct {
	font     *sfnt.Font
	subtable cmap.Subtable
}

// NewDigestSource returns an empty digest source.
func NewDigestSource() *DigestSource {
	return &DigestSource{fonts: make(map[string]*digestFont)}
}

// AddFile parses a font file and registers it under its file name.
func (s *DigestSource) AddFile(fname string) error {
	f, err := readFont(fname)
	if err != nil {
		return err
	}
	return s.AddFont(fname, f)
}

// AddFont registers an already parsed font under the given identifier.
func (s *DigestSource) AddFont(id string, f *sfnt.Font) error {
	subtable, err := bestCMap(f)
	if err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	s.fonts[id] = &digestFont{font: f, subtable: subtable}
	return nil
}

// Digest returns the outline digest for one glyph of one font.  The error
// wraps [shape.ErrUnavailable] if the font is not registered, the
// codepoint is not mapped, or the font has no outline data.
func (s *DigestSource) Digest(fontID string, cp rune) (shape.Digest, error) {
	df, ok := s.fonts[fontID]
	if !ok {
		return shape.Digest{}, fmt.Errorf("%s: font not loaded: %w",
			fontID, shape.ErrUnavailable)
	}
	gid := df.subtable.Lookup(cp)
	if gid == 0 {
		return shape.Digest{}, fmt.Errorf("%s/U+%04X: codepoint not mapped: %w",
			fontID, cp, shape.ErrUnavailable)
	}
	if df.font.Outlines == nil {
		return shape.Digest{}, fmt.Errorf("%s: no outline data: %w",
			fontID, shape.ErrUnavailable)
	}
	p := df.font.Outlines.Path(gid)
	return shape.NewDigest(df.font.UnitsPerEm, p), nil
}
