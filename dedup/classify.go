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
	"runtime"
	"sync"

	"seehuhn.de/go/fontdedup/shape"
)

// classification is the result of shape analysis for one codepoint:
// the containing fonts partitioned into classes of identical outline.
type classification struct {
	cp       rune
	groups   [][]int // input positions, priority order within each group
	warnings []Warning
}

func (c *classification) isVariant() bool {
	return len(c.groups) > 1
}

// classify partitions the fonts containing cp into outline-equality
// classes.  Digest equality is an equivalence relation, so comparing each
// font against one representative per class is sufficient.  A font whose
// digest cannot be produced goes into a class of its own and is never
// merged, so uncertainty biases toward retention.
func (e *engine) classify(digest DigestFunc, cp rune, containing []int) *classification {
	type group struct {
		digest  shape.Digest
		members []int
		solo    bool // digest unavailable, never merge
	}

	var groups []*group
	var warnings []Warning
	for _, pos := range containing {
		d, err := digest(e.fonts[pos].ID, cp)
		if err != nil {
			warnings = append(warnings, Warning{
				FontID:    e.fonts[pos].ID,
				Codepoint: cp,
				Err:       err,
			})
			groups = append(groups, &group{members: []int{pos}, solo: true})
			continue
		}

		matched := false
		for _, g := range groups {
			if !g.solo && g.digest.Equal(d) {
				g.members = append(g.members, pos)
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, &group{digest: d, members: []int{pos}})
		}
	}

	c := &classification{cp: cp, warnings: warnings}
	for _, g := range groups {
		c.groups = append(c.groups, g.members)
	}
	return c
}

// classifyAll runs classify for every codepoint in cps, spreading the work
// over a bounded number of goroutines.  Each codepoint is independent, and
// results are stored by input index, so the outcome does not depend on
// scheduling.  If ctx is cancelled, classifyAll returns the context error
// and no results.
func (e *engine) classifyAll(ctx context.Context, digest DigestFunc, cps []rune, containing map[rune][]int) ([]*classification, error) {
	results := make([]*classification, len(cps))

	n := runtime.GOMAXPROCS(0)
	if n > len(cps) {
		n = len(cps)
	}
	if n < 1 {
		n = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				cp := cps[idx]
				results[idx] = e.classify(digest, cp, containing[cp])
			}
		}()
	}

feed:
	for i := range cps {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
