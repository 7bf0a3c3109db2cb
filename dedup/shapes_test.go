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

package dedup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fontdedup/shape"
)

// fakeDigests maps font ID and codepoint to a small integer; equal
// integers stand for equal outlines.  Missing entries are unavailable.
type fakeDigests map[string]map[rune]int

func (f fakeDigests) digest(fontID string, cp rune) (shape.Digest, error) {
	v, ok := f[fontID][cp]
	if !ok {
		return shape.Digest{}, fmt.Errorf("%s/%#x: %w", fontID, cp, shape.ErrUnavailable)
	}
	var d shape.Digest
	d[0] = byte(v)
	d[1] = byte(v >> 8)
	return d, nil
}

func TestShapeVariantProtected(t *testing.T) {
	fonts := []*Font{
		{ID: "C", Codepoints: []rune{0x4E2D, 0x41}},
		{ID: "D", Codepoints: []rune{0x4E2D, 0x41}},
	}
	digests := fakeDigests{
		"C": {0x4E2D: 1, 0x41: 7},
		"D": {0x4E2D: 2, 0x41: 7},
	}
	plan, err := DeduplicateShapes(context.Background(), fonts, digests.digest, nil)
	if err != nil {
		t.Fatal(err)
	}

	// 0x4E2D has two distinct shapes and must stay in both fonts;
	// 0x41 has one shape and follows the priority rule.
	wantKeep := map[string][]rune{
		"C": {0x41, 0x4E2D},
		"D": {0x4E2D},
	}
	wantRemove := map[string][]rune{
		"C": {},
		"D": {0x41},
	}
	if d := cmp.Diff(wantKeep, plan.Keep); d != "" {
		t.Errorf("keep (-want +got):\n%s", d)
	}
	if d := cmp.Diff(wantRemove, plan.Remove); d != "" {
		t.Errorf("remove (-want +got):\n%s", d)
	}

	wantVariants := []Variant{
		{Codepoint: 0x4E2D, Groups: [][]string{{"C"}, {"D"}}},
	}
	if d := cmp.Diff(wantVariants, plan.Variants); d != "" {
		t.Errorf("variants (-want +got):\n%s", d)
	}
	wantDups := []Duplicate{
		{Codepoint: 0x41, Fonts: []string{"C", "D"}},
	}
	if d := cmp.Diff(wantDups, plan.Duplicates); d != "" {
		t.Errorf("duplicates (-want +got):\n%s", d)
	}
	checkPlanComplete(t, fonts, plan)
}

func TestShapeGrouping(t *testing.T) {
	fonts := []*Font{
		{ID: "A", Codepoints: []rune{0x41}},
		{ID: "B", Codepoints: []rune{0x41}},
		{ID: "C", Codepoints: []rune{0x41}},
		{ID: "D", Codepoints: []rune{0x41}},
	}
	digests := fakeDigests{
		"A": {0x41: 1},
		"B": {0x41: 2},
		"C": {0x41: 1},
		"D": {0x41: 2},
	}
	plan, err := DeduplicateShapes(context.Background(), fonts, digests.digest, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantVariants := []Variant{
		{Codepoint: 0x41, Groups: [][]string{{"A", "C"}, {"B", "D"}}},
	}
	if d := cmp.Diff(wantVariants, plan.Variants); d != "" {
		t.Errorf("variants (-want +got):\n%s", d)
	}
	for _, id := range []string{"A", "B", "C", "D"} {
		if len(plan.Remove[id]) != 0 {
			t.Errorf("font %q: variant codepoint removed", id)
		}
	}
}

func TestUnavailableDigest(t *testing.T) {
	fonts := []*Font{
		{ID: "A", Codepoints: []rune{0x41}},
		{ID: "B", Codepoints: []rune{0x41}},
	}
	// no digests at all: both fonts end up in singleton classes
	digests := fakeDigests{}
	plan, err := DeduplicateShapes(context.Background(), fonts, digests.digest, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.Remove["A"])+len(plan.Remove["B"]) != 0 {
		t.Error("codepoint with unavailable digests was removed")
	}
	if len(plan.Variants) != 1 {
		t.Fatalf("got %d variants, want 1", len(plan.Variants))
	}
	if len(plan.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2", len(plan.Warnings))
	}
	for _, w := range plan.Warnings {
		if !errors.Is(w.Err, shape.ErrUnavailable) {
			t.Errorf("warning does not wrap ErrUnavailable: %v", w.Err)
		}
		if w.Codepoint != 0x41 {
			t.Errorf("warning for wrong codepoint %#x", w.Codepoint)
		}
	}
}

// TestShapeModeConservative checks that shape-aware removals are a subset
// of Unicode-only removals for the same input.
func TestShapeModeConservative(t *testing.T) {
	fonts := []*Font{
		{ID: "A", Codepoints: []rune{0x41, 0x42, 0x43, 0x44}},
		{ID: "B", Codepoints: []rune{0x42, 0x43, 0x44, 0x45}},
		{ID: "C", Codepoints: []rune{0x43, 0x44, 0x45, 0x46}},
	}
	digests := fakeDigests{
		"A": {0x42: 1, 0x43: 1, 0x44: 9},
		"B": {0x42: 1, 0x43: 2, 0x45: 5},
		"C": {0x43: 3, 0x44: 9, 0x45: 5},
	}

	unicode, err := Deduplicate(context.Background(), fonts, nil)
	if err != nil {
		t.Fatal(err)
	}
	shaped, err := DeduplicateShapes(context.Background(), fonts, digests.digest, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range fonts {
		unicodeRemoved := make(map[rune]bool)
		for _, cp := range unicode.Remove[f.ID] {
			unicodeRemoved[cp] = true
		}
		for _, cp := range shaped.Remove[f.ID] {
			if !unicodeRemoved[cp] {
				t.Errorf("font %q: shape mode removed %#x, Unicode mode did not",
					f.ID, cp)
			}
		}
	}
	checkPlanComplete(t, fonts, shaped)
}

func TestCodepointLimit(t *testing.T) {
	fonts := []*Font{
		{ID: "A", Codepoints: []rune{0x41, 0x42, 0x43}},
		{ID: "B", Codepoints: []rune{0x41, 0x42, 0x43}},
	}
	digests := fakeDigests{
		"A": {0x41: 1, 0x42: 1, 0x43: 1},
		"B": {0x41: 1, 0x42: 1, 0x43: 1},
	}
	opt := &Options{CodepointLimit: 2}
	plan, err := DeduplicateShapes(context.Background(), fonts, digests.digest, opt)
	if err != nil {
		t.Fatal(err)
	}

	// 0x41 and 0x42 are analyzed and removed from B; 0x43 is past the
	// limit and must be retained everywhere.
	wantRemove := map[string][]rune{
		"A": {},
		"B": {0x41, 0x42},
	}
	if d := cmp.Diff(wantRemove, plan.Remove); d != "" {
		t.Errorf("remove (-want +got):\n%s", d)
	}
	wantVariants := []Variant{
		{Codepoint: 0x43, Unresolved: true},
	}
	if d := cmp.Diff(wantVariants, plan.Variants); d != "" {
		t.Errorf("variants (-want +got):\n%s", d)
	}
}

func TestShapeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fonts := twoFonts()
	digests := fakeDigests{}
	plan, err := DeduplicateShapes(ctx, fonts, digests.digest, nil)
	if plan != nil {
		t.Error("cancelled run returned a plan")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestNilDigestSource(t *testing.T) {
	_, err := DeduplicateShapes(context.Background(), twoFonts(), nil, nil)
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Errorf("got %v, want ConfigError", err)
	}
}
