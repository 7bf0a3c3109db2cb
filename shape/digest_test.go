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

package shape

import (
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

type seg struct {
	cmd    path.Command
	points []vec.Vec2
}

func pathOf(segs ...seg) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, s := range segs {
			if !yield(s.cmd, s.points) {
				return
			}
		}
	}
}

var square = []seg{
	{path.CmdMoveTo, []vec.Vec2{{X: 0, Y: 0}}},
	{path.CmdLineTo, []vec.Vec2{{X: 100, Y: 0}}},
	{path.CmdLineTo, []vec.Vec2{{X: 100, Y: 100}}},
	{path.CmdLineTo, []vec.Vec2{{X: 0, Y: 100}}},
	{path.CmdClose, nil},
}

func TestDigestReflexive(t *testing.T) {
	d1 := NewDigest(1000, pathOf(square...))
	d2 := NewDigest(1000, pathOf(square...))
	if !d1.Equal(d1) {
		t.Error("digest not equal to itself")
	}
	if !d1.Equal(d2) {
		t.Error("identical outlines produce different digests")
	}
	if !d2.Equal(d1) {
		t.Error("Equal is not symmetric")
	}
}

func TestDigestDistinguishes(t *testing.T) {
	base := NewDigest(1000, pathOf(square...))

	// a single moved point changes the digest
	moved := append([]seg(nil), square...)
	moved[2] = seg{path.CmdLineTo, []vec.Vec2{{X: 100, Y: 101}}}
	if base.Equal(NewDigest(1000, pathOf(moved...))) {
		t.Error("moved point not detected")
	}

	// the same commands on a different design grid are not the same shape
	if base.Equal(NewDigest(2048, pathOf(square...))) {
		t.Error("units-per-em not part of the digest")
	}

	// an empty outline differs from a non-empty one
	if base.Equal(NewDigest(1000, pathOf())) {
		t.Error("empty outline equal to square")
	}
}

func TestSimilarity(t *testing.T) {
	a := NewDigest(1000, pathOf(square...))
	b := NewDigest(1000, pathOf(square[:4]...))
	if s := Similarity(a, a); s != 1.0 {
		t.Errorf("Similarity(a, a) = %g", s)
	}
	if s := Similarity(a, b); s != 0.0 {
		t.Errorf("Similarity(a, b) = %g", s)
	}
}
