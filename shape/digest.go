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

// Package shape compares glyph outlines for exact equality.
//
// Outline data in a font is exact vector geometry.  There is no rendering
// noise to tolerate, so two glyphs either have identical outlines or they
// are genuinely different designs.  This package therefore reduces each
// outline to a canonical fingerprint, the [Digest], and compares digests
// byte for byte.  No approximate similarity scoring takes place.
package shape

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math"

	"seehuhn.de/go/geom/path"
)

// Digest is a canonical fingerprint of one glyph outline.
//
// The digest covers the complete command stream of the outline together
// with the units-per-em value of the font.  The latter is included because
// the same command stream drawn at a different design grid size renders at
// a different scale.
type Digest [sha256.Size]byte

// ErrUnavailable indicates that no outline digest can be produced for a
// given glyph.  Callers must treat this as "comparison inconclusive",
// not as equal or unequal.
var ErrUnavailable = errors.New("glyph outline unavailable")

// NewDigest computes the digest of a glyph outline.
func NewDigest(unitsPerEm uint16, p path.Path) Digest {
	h := sha256.New()
	var buf [8]byte

	binary.BigEndian.PutUint16(buf[:2], unitsPerEm)
	h.Write(buf[:2])

	for cmd, points := range p {
		buf[0] = byte(cmd)
		buf[1] = byte(len(points))
		h.Write(buf[:2])
		for _, pt := range points {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(pt.X))
			h.Write(buf[:])
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(pt.Y))
			h.Write(buf[:])
		}
	}

	var d Digest
	h.Sum(d[:0])
	return d
}

// Equal reports whether two digests describe the same outline.
func (d Digest) Equal(other Digest) bool {
	return d == other
}

// Similarity returns 1.0 if the two digests are equal and 0.0 otherwise.
//
// The [0.0, 1.0] scale exists so that a future non-exact comparison mode
// can slot in without an API change; the current implementation never
// returns intermediate values.
func Similarity(a, b Digest) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}
