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

// Font-dedup finds glyphs which occur in more than one font of a font
// collection and computes which fonts can drop their copy.
//
// Usage:
//
//	font-dedup analyze [options] font1 font2 ...
//	font-dedup subset [options] -o outdir font1 font2 ...
//	font-dedup check [options] font1 font2 ...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontdedup/cprange"
	"seehuhn.de/go/fontdedup/dedup"
	"seehuhn.de/go/fontdedup/fontinfo"
	"seehuhn.de/go/fontdedup/preview"
	"seehuhn.de/go/fontdedup/report"
	"seehuhn.de/go/fontdedup/subset"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "analyze":
		err = cmdAnalyze(ctx, os.Args[2:])
	case "subset":
		err = cmdSubset(ctx, os.Args[2:])
	case "check":
		err = cmdCheck(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "font-dedup: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: font-dedup <command> [options] font1 font2 ...

The commands are:

	analyze    report duplicate glyphs and shape variants
	subset     write deduplicated copies of the fonts
	check      validate font files

Use "font-dedup <command> -h" for details on one command.
`)
}

// stringList collects the values of a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return fmt.Sprint(*l) }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

// selection holds the flags shared by the analyze and subset commands.
type selection struct {
	priority  stringList
	include   stringList
	exclude   stringList
	shapes    bool
	threshold float64
	limit     int
}

func (s *selection) register(fs *flag.FlagSet) {
	fs.Var(&s.priority, "priority",
		"font to prefer when picking a keeper (repeatable, ordered)")
	fs.Var(&s.include, "include",
		"codepoint range to analyze, e.g. 0x4E00-0x9FFF (repeatable)")
	fs.Var(&s.exclude, "exclude",
		"codepoint range to leave alone (repeatable)")
	fs.BoolVar(&s.shapes, "shapes", false,
		"compare glyph outlines before removing duplicates")
	fs.Float64Var(&s.threshold, "threshold", 1.0,
		"required outline similarity, between 0 and 1")
	fs.IntVar(&s.limit, "limit", 0,
		"maximum number of codepoints to compare by shape (0 = no limit)")
}

func (s *selection) options() (*dedup.Options, error) {
	include, err := cprange.ParseAll(s.include)
	if err != nil {
		return nil, err
	}
	exclude, err := cprange.ParseAll(s.exclude)
	if err != nil {
		return nil, err
	}
	return &dedup.Options{
		Priority:            s.priority,
		Include:             include,
		Exclude:             exclude,
		SimilarityThreshold: s.threshold,
		CodepointLimit:      s.limit,
	}, nil
}

// plan loads the fonts and computes the retention plan.
func (s *selection) plan(ctx context.Context, fnames []string) ([]*fontinfo.Info, *dedup.Plan, error) {
	opt, err := s.options()
	if err != nil {
		return nil, nil, err
	}

	infos, err := fontinfo.ReadAll(fnames)
	if err != nil {
		return nil, nil, err
	}
	fonts := fontinfo.Fonts(infos)

	var plan *dedup.Plan
	if s.shapes {
		src := fontinfo.NewDigestSource()
		for _, fname := range fnames {
			if err := src.AddFile(fname); err != nil {
				return nil, nil, err
			}
		}
		plan, err = dedup.DeduplicateShapes(ctx, fonts, src.Digest, opt)
	} else {
		plan, err = dedup.Deduplicate(ctx, fonts, opt)
	}
	if err != nil {
		return nil, nil, err
	}
	return infos, plan, nil
}

func cmdAnalyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var sel selection
	sel.register(fs)
	previews := fs.String("previews", "",
		"directory for PNG images of shape variants")
	size := fs.Int("preview-size", 128, "preview image size in pixels")
	fs.Parse(args)

	fnames := fs.Args()
	if len(fnames) < 2 {
		return fmt.Errorf("need at least two font files")
	}

	infos, plan, err := sel.plan(ctx, fnames)
	if err != nil {
		return err
	}

	r := report.New(os.Stdout, reportWidth())
	if err := r.Fonts(infos); err != nil {
		return err
	}
	if err := r.Plan(plan); err != nil {
		return err
	}

	if *previews != "" && len(plan.Variants) > 0 {
		if err := os.MkdirAll(*previews, 0o755); err != nil {
			return err
		}
		fonts, err := loadFonts(fnames)
		if err != nil {
			return err
		}
		written, err := preview.Variants(plan, fonts, *previews, *size)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d preview images to %s\n", len(written), *previews)
	}
	return nil
}

func cmdSubset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("subset", flag.ExitOnError)
	var sel selection
	sel.register(fs)
	outDir := fs.String("o", "", "output directory (required)")
	suffix := fs.String("suffix", "-subset", "suffix for output file names")
	fs.Parse(args)

	fnames := fs.Args()
	if len(fnames) < 2 {
		return fmt.Errorf("need at least two font files")
	}
	if *outDir == "" {
		return fmt.Errorf("no output directory given, use -o")
	}

	_, plan, err := sel.plan(ctx, fnames)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	fonts, err := loadFonts(fnames)
	if err != nil {
		return err
	}
	outputs, err := subset.ApplyPlan(plan, fonts, *outDir, *suffix)
	if err != nil {
		return err
	}

	// make sure the written fonts still cover what the plan promised
	for _, out := range outputs {
		res := fontinfo.CheckCoverage(out.Path, plan.Keep[out.FontID])
		if !res.OK() {
			return fmt.Errorf("%s: %s", out.Path, res.Errors[0])
		}
	}

	r := report.New(os.Stdout, reportWidth())
	if err := r.Plan(plan); err != nil {
		return err
	}
	return r.Outputs(outputs)
}

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Parse(args)

	fnames := fs.Args()
	if len(fnames) == 0 {
		return fmt.Errorf("no font files given")
	}

	results := make([]*fontinfo.CheckResult, len(fnames))
	allOK := true
	for i, fname := range fnames {
		results[i] = fontinfo.Check(fname)
		allOK = allOK && results[i].OK()
	}

	r := report.New(os.Stdout, reportWidth())
	if err := r.Checks(results); err != nil {
		return err
	}
	if !allOK {
		return fmt.Errorf("some fonts failed validation")
	}
	return nil
}

// loadFonts parses the font files again for subsetting and rendering.
// The font IDs used by the engine are the file names, so the map is
// keyed the same way.
func loadFonts(fnames []string) (map[string]*sfnt.Font, error) {
	fonts := make(map[string]*sfnt.Font, len(fnames))
	for _, fname := range fnames {
		fd, err := os.Open(fname)
		if err != nil {
			return nil, err
		}
		f, err := sfnt.Read(fd)
		fd.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: parsing font: %w", fname, err)
		}
		fonts[fname] = f
	}
	return fonts, nil
}

// reportWidth returns the width of the terminal, or 80 if stdout is not
// a terminal.
func reportWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
