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
	"errors"
	"testing"

	"seehuhn.de/go/fontdedup/internal/testfont"
	"seehuhn.de/go/fontdedup/shape"
)

func TestDigestSameShape(t *testing.T) {
	src := NewDigestSource()
	err := src.AddFont("one", testfont.New("One", map[rune]int{'A': 3, 'B': 4}))
	if err != nil {
		t.Fatal(err)
	}
	err = src.AddFont("two", testfont.New("Two", map[rune]int{'A': 3, 'B': 5}))
	if err != nil {
		t.Fatal(err)
	}

	dA1, err := src.Digest("one", 'A')
	if err != nil {
		t.Fatal(err)
	}
	dA2, err := src.Digest("two", 'A')
	if err != nil {
		t.Fatal(err)
	}
	if !dA1.Equal(dA2) {
		t.Error("identical outlines produced different digests")
	}

	dB1, err := src.Digest("one", 'B')
	if err != nil {
		t.Fatal(err)
	}
	dB2, err := src.Digest("two", 'B')
	if err != nil {
		t.Fatal(err)
	}
	if dB1.Equal(dB2) {
		t.Error("different outlines produced the same digest")
	}
}

func TestDigestStable(t *testing.T) {
	src := NewDigestSource()
	err := src.AddFont("f", testfont.New("F", map[rune]int{'A': 1}))
	if err != nil {
		t.Fatal(err)
	}
	d1, err := src.Digest("f", 'A')
	if err != nil {
		t.Fatal(err)
	}
	d2, err := src.Digest("f", 'A')
	if err != nil {
		t.Fatal(err)
	}
	if !d1.Equal(d2) {
		t.Error("repeated digest requests disagree")
	}
}

func TestDigestUnavailable(t *testing.T) {
	src := NewDigestSource()
	err := src.AddFont("f", testfont.New("F", map[rune]int{'A': 1}))
	if err != nil {
		t.Fatal(err)
	}

	_, err = src.Digest("missing", 'A')
	if !errors.Is(err, shape.ErrUnavailable) {
		t.Errorf("unregistered font: err = %v, want ErrUnavailable", err)
	}

	_, err = src.Digest("f", 'Z')
	if !errors.Is(err, shape.ErrUnavailable) {
		t.Errorf("unmapped codepoint: err = %v, want ErrUnavailable", err)
	}
}
