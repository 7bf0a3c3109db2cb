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

// Package preview renders individual glyphs to images.  This is used to
// produce side-by-side pictures of shape variants, so a user can judge
// whether glyphs which differ only slightly should really all be kept.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/vector"
	geompath "seehuhn.de/go/geom/path"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontdedup/dedup"
)

// Glyph renders the glyph for codepoint cp on a white square of the
// given pixel size.  The glyph is scaled so that the full ascent to
// descent range of the font fits vertically.
func Glyph(f *sfnt.Font, cp rune, size int) (*image.RGBA, error) {
	if f.CMapTable == nil {
		return nil, fmt.Errorf("font has no character map")
	}
	subtable, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("no usable character map: %w", err)
	}
	gid := subtable.Lookup(cp)
	if gid == 0 {
		return nil, fmt.Errorf("codepoint U+%04X is not mapped", cp)
	}
	if f.Outlines == nil {
		return nil, fmt.Errorf("font has no glyph outlines")
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Scale glyph coordinates to pixels.  Font coordinates have y
	// pointing up, images have y pointing down, so y is flipped around
	// the baseline.
	extent := float64(f.Ascent) - float64(f.Descent)
	if extent <= 0 {
		extent = float64(f.UnitsPerEm)
	}
	scale := float64(size) / extent
	baseline := float64(f.Ascent) * scale
	dx := func(x float64) float32 { return float32(x * scale) }
	dy := func(y float64) float32 { return float32(baseline - y*scale) }

	raster := vector.NewRasterizer(size, size)
	for cmd, points := range f.Outlines.Path(gid) {
		switch cmd {
		case geompath.CmdMoveTo:
			raster.MoveTo(dx(points[0].X), dy(points[0].Y))
		case geompath.CmdLineTo:
			raster.LineTo(dx(points[0].X), dy(points[0].Y))
		case geompath.CmdQuadTo:
			raster.QuadTo(dx(points[0].X), dy(points[0].Y),
				dx(points[1].X), dy(points[1].Y))
		case geompath.CmdCubeTo:
			raster.CubeTo(dx(points[0].X), dy(points[0].Y),
				dx(points[1].X), dy(points[1].Y),
				dx(points[2].X), dy(points[2].Y))
		case geompath.CmdClose:
			raster.ClosePath()
		}
	}
	raster.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})

	return img, nil
}

// Variants writes one PNG image per font for every shape variant in the
// plan, named "U+XXXX-<n>-<fontID>.png".  It returns the paths of the
// images written so far even when an error occurs.
func Variants(plan *dedup.Plan, fonts map[string]*sfnt.Font, outDir string, size int) ([]string, error) {
	var written []string
	for _, v := range plan.Variants {
		if v.Unresolved {
			continue
		}
		for i, group := range v.Groups {
			for _, id := range group {
				f, ok := fonts[id]
				if !ok {
					return written, fmt.Errorf("%s: font not loaded", id)
				}
				img, err := Glyph(f, v.Codepoint, size)
				if err != nil {
					return written, fmt.Errorf("%s/U+%04X: %w", id, v.Codepoint, err)
				}
				fname := filepath.Join(outDir, fmt.Sprintf("U+%04X-%d-%s.png",
					v.Codepoint, i+1, baseName(id)))
				if err := writePNG(fname, img); err != nil {
					return written, err
				}
				written = append(written, fname)
			}
		}
	}
	return written, nil
}

func writePNG(fname string, img image.Image) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(fd, img); err != nil {
		fd.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return fd.Close()
}

func baseName(id string) string {
	base := filepath.Base(id)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
