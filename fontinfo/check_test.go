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
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/fontdedup/internal/testfont"
)

func TestCheckValid(t *testing.T) {
	res := Check(writeGoRegular(t))
	if !res.OK() {
		t.Errorf("valid font rejected: %v", res.Errors)
	}
}

func TestCheckFont(t *testing.T) {
	res := CheckFont("test", testfont.New("Test", map[rune]int{'A': 1}))
	if !res.OK() {
		t.Errorf("valid font rejected: %v", res.Errors)
	}
}

func TestCheckNotAFont(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "garbage.ttf")
	if err := os.WriteFile(fname, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	res := Check(fname)
	if res.OK() {
		t.Error("garbage file accepted")
	}
}

func TestCheckCoverage(t *testing.T) {
	fname := writeGoRegular(t)

	res := CheckCoverage(fname, []rune{'A', 'B', 'z'})
	if !res.OK() {
		t.Errorf("covered codepoints reported missing: %v", res.Errors)
	}

	res = CheckCoverage(fname, []rune{'A', 0x4E00})
	if res.OK() {
		t.Error("missing codepoint not reported")
	}
}
