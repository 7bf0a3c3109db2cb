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
)

// CheckResult collects the problems found while validating a font file.
// Problems are accumulated rather than reported one at a time, so a
// single pass over a broken file shows everything that is wrong with it.
type CheckResult struct {
	Path     string
	Errors   []string
	Warnings []string
}

// OK reports whether validation found no errors.  Warnings do not count.
func (r *CheckResult) OK() bool {
	return len(r.Errors) == 0
}

func (r *CheckResult) errorf(format string, a ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, a...))
}

func (r *CheckResult) warnf(format string, a ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

// Check validates that fname is a usable font file: it must parse, carry
// glyph outlines, and have a non-empty character map.
func Check(fname string) *CheckResult {
	res := &CheckResult{Path: fname}
	f, err := readFont(fname)
	if err != nil {
		res.errorf("%v", err)
		return res
	}
	checkFont(f, res)
	return res
}

// CheckFont validates an already parsed font under the given identifier.
func CheckFont(id string, f *sfnt.Font) *CheckResult {
	res := &CheckResult{Path: id}
	checkFont(f, res)
	return res
}

func checkFont(f *sfnt.Font, res *CheckResult) {
	if f.Outlines == nil {
		res.errorf("font has no glyph outlines")
	}
	subtable, err := bestCMap(f)
	if err != nil {
		res.errorf("%v", err)
		return
	}
	if len(codepoints(subtable)) == 0 {
		res.warnf("character map contains no Unicode mappings")
	}
}

// CheckCoverage validates fname and then verifies that every codepoint in
// want is still mapped to a glyph.  This is used after subsetting to make
// sure the writer kept exactly the glyphs the retention plan asked for.
func CheckCoverage(fname string, want []rune) *CheckResult {
	res := &CheckResult{Path: fname}
	f, err := readFont(fname)
	if err != nil {
		res.errorf("%v", err)
		return res
	}
	checkFont(f, res)
	if !res.OK() {
		return res
	}

	subtable, err := bestCMap(f)
	if err != nil {
		res.errorf("%v", err)
		return res
	}

	var missing []rune
	for _, cp := range want {
		if subtable.Lookup(cp) == 0 {
			missing = append(missing, cp)
		}
	}
	const maxShown = 10
	for i, cp := range missing {
		if i == maxShown {
			res.errorf("... and %d more missing codepoints", len(missing)-maxShown)
			break
		}
		res.errorf("codepoint U+%04X is no longer mapped", cp)
	}
	return res
}
