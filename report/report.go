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

// Package report renders analysis results as plain text for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/fontdedup/dedup"
	"seehuhn.de/go/fontdedup/fontinfo"
	"seehuhn.de/go/fontdedup/subset"
)

const (
	defaultWidth = 80

	// maxListed bounds the number of individual codepoints printed per
	// section; large CJK fonts can share tens of thousands of glyphs.
	maxListed = 20
)

// Writer formats reports.  Lines longer than the given width are
// truncated, so the output stays readable on narrow terminals.
type Writer struct {
	w     io.Writer
	width int
	err   error
}

// New creates a report writer.  A width of zero or less selects a
// default of 80 columns.
func New(w io.Writer, width int) *Writer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Writer{w: w, width: width}
}

// Fonts writes a table describing the input fonts.
func (r *Writer) Fonts(infos []*fontinfo.Info) error {
	r.printf("input fonts:\n")
	for i, info := range infos {
		r.printf("  %d. %s\n", i+1, info.Path)
		r.printf("     family %q, %d glyphs, %d codepoints, %d units/em\n",
			info.FamilyName, info.NumGlyphs, len(info.Codepoints), info.UnitsPerEm)
	}
	r.printf("\n")
	return r.err
}

// Plan writes a human-readable description of a retention plan.
func (r *Writer) Plan(plan *dedup.Plan) error {
	if len(plan.Duplicates) > 0 {
		r.printf("duplicate glyphs (%d):\n", len(plan.Duplicates))
		shared := map[int]int{}
		for _, d := range plan.Duplicates {
			shared[len(d.Fonts)]++
		}
		for _, n := range sortedCounts(shared) {
			r.printf("  shared by %d fonts: %d codepoints\n", n, shared[n])
		}
		for i, d := range plan.Duplicates {
			if i == maxListed {
				r.printf("  ... and %d more\n", len(plan.Duplicates)-maxListed)
				break
			}
			r.printf("  %s\n", r.fit(cpLabel(d.Codepoint)))
			r.printf("    kept in %s, removed from %s\n",
				d.Fonts[0], strings.Join(d.Fonts[1:], ", "))
		}
		r.printf("\n")
	}

	if len(plan.Variants) > 0 {
		r.printf("shape variants (%d, all retained):\n", len(plan.Variants))
		for _, v := range plan.Variants {
			r.printf("  %s\n", r.fit(cpLabel(v.Codepoint)))
			if v.Unresolved {
				r.printf("    not analysed (codepoint limit reached)\n")
				continue
			}
			for i, group := range v.Groups {
				r.printf("    shape %d: %s\n", i+1, strings.Join(group, ", "))
			}
		}
		r.printf("\n")
	}

	if len(plan.Warnings) > 0 {
		r.printf("warnings (%d):\n", len(plan.Warnings))
		for _, w := range plan.Warnings {
			r.printf("  %s %s: %v\n", w.FontID, cpCode(w.Codepoint), w.Err)
		}
		r.printf("\n")
	}

	r.printf("summary:\n")
	for _, id := range sortedKeys(plan.Keep) {
		r.printf("  %s: keep %d, remove %d\n",
			id, len(plan.Keep[id]), len(plan.Remove[id]))
	}
	return r.err
}

// Checks writes the validation results for a list of font files.
func (r *Writer) Checks(results []*fontinfo.CheckResult) error {
	for _, res := range results {
		status := "ok"
		if !res.OK() {
			status = "FAILED"
		}
		r.printf("%s: %s\n", res.Path, status)
		for _, msg := range res.Errors {
			r.printf("  error: %s\n", r.fit(msg))
		}
		for _, msg := range res.Warnings {
			r.printf("  warning: %s\n", r.fit(msg))
		}
	}
	return r.err
}

// Outputs writes a table of the font files produced by subsetting.
func (r *Writer) Outputs(outputs []*subset.Output) error {
	r.printf("written fonts:\n")
	for _, out := range outputs {
		r.printf("  %s (%d codepoints, %d glyphs)\n",
			out.Path, out.Codepoints, out.NumGlyphs)
	}
	return r.err
}

func (r *Writer) printf(format string, a ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, a...)
}

// fit truncates s so a line with two columns of indent still fits the
// configured width.
func (r *Writer) fit(s string) string {
	max := r.width - 4
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// cpLabel describes a codepoint with its Unicode character name.
func cpLabel(cp rune) string {
	name := runenames.Name(cp)
	if name == "" {
		return cpCode(cp)
	}
	return fmt.Sprintf("%s %s", cpCode(cp), name)
}

func cpCode(cp rune) string {
	return fmt.Sprintf("U+%04X", cp)
}

func sortedCounts(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedKeys(m map[string][]rune) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
