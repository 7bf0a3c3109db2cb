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

package subset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontdedup/dedup"
)

// Output describes one font file written by ApplyPlan.
type Output struct {
	FontID     string
	Path       string
	Codepoints int
	NumGlyphs  int
}

// ApplyPlan subsets every font according to the retention plan and writes
// the result into outDir.  The fonts map must contain a parsed font for
// every font ID the plan mentions.  The suffix is appended to the base
// name of each output file; an empty suffix selects "-subset".
func ApplyPlan(plan *dedup.Plan, fonts map[string]*sfnt.Font, outDir, suffix string) ([]*Output, error) {
	if suffix == "" {
		suffix = "-subset"
	}
	ids := make([]string, 0, len(plan.Keep))
	for id := range plan.Keep {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var outputs []*Output
	for _, id := range ids {
		f, ok := fonts[id]
		if !ok {
			return nil, fmt.Errorf("%s: font not loaded", id)
		}
		sub, err := Apply(f, plan.Keep[id])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}

		fname := filepath.Join(outDir, outputName(id, suffix, sub))
		if err := WriteFile(fname, sub); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		outputs = append(outputs, &Output{
			FontID:     id,
			Path:       fname,
			Codepoints: len(plan.Keep[id]),
			NumGlyphs:  sub.NumGlyphs(),
		})
	}
	return outputs, nil
}

// WriteFile writes the font to fname, as OpenType/CFF or TrueType
// depending on the type of the glyph outlines.
func WriteFile(fname string, f *sfnt.Font) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	if f.IsCFF() {
		err = f.WriteOpenTypeCFFPDF(fd)
	} else {
		_, err = f.WriteTrueTypePDF(fd)
	}
	if err != nil {
		fd.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return fd.Close()
}

// outputName derives the output file name for a subset font from the
// input font ID.  The extension follows the outline format, since a
// TrueType input may well come from a .otf file and vice versa.
func outputName(id, suffix string, f *sfnt.Font) string {
	base := filepath.Base(id)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	ext := ".ttf"
	if f.IsCFF() {
		ext = ".otf"
	}
	return base + suffix + ext
}
