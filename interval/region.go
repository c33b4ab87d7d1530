// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interval

import "fmt"

// PosType is the coordinate type.  int32 matches what the alignment and VCF
// inputs can express.
type PosType = int32

// Region is a closed interval [Start, Stop] on a numbered chromosome.  Label
// is the gene name for gene regions and empty otherwise.
type Region struct {
	Chr   int32
	Start PosType
	Stop  PosType
	Label string
}

// Contains returns true iff chr:pos lies inside r.
func (r Region) Contains(chr int32, pos PosType) bool {
	return chr == r.Chr && pos >= r.Start && pos <= r.Stop
}

func (r Region) String() string {
	if r.Label == "" {
		return fmt.Sprintf("%d:%d-%d", r.Chr, r.Start, r.Stop)
	}
	return fmt.Sprintf("%s(%d:%d-%d)", r.Label, r.Chr, r.Start, r.Stop)
}

// Index is an immutable list of regions sorted by (Chr, Start).
type Index struct {
	regions []Region
}

// NewIndex wraps regions, which must already be sorted.  The slice is not
// copied.
func NewIndex(regions []Region) *Index {
	return &Index{regions: regions}
}

// Len returns the number of regions.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.regions)
}

// At returns the i'th region.
func (x *Index) At(i int) Region {
	return x.regions[i]
}

// NewCursor returns a Cursor positioned before the first region.  Several
// cursors may scan the same Index independently.
func (x *Index) NewCursor() *Cursor {
	c := &Cursor{}
	if x != nil {
		c.regions = x.regions
	}
	return c
}

// Cursor is a forward-only scan position in an Index.
type Cursor struct {
	regions []Region
	idx     int
}

// Find returns the region containing chr:pos.  Regions that end before
// chr:pos are passed over for good; a region that starts after chr:pos is
// left in place, since a later query may still land in it.  Queries must be
// issued in nondecreasing (chr, pos) order; a query on a chromosome behind
// the cursor never matches.
func (c *Cursor) Find(chr int32, pos PosType) (Region, bool) {
	for c.idx < len(c.regions) {
		r := &c.regions[c.idx]
		if chr < r.Chr {
			return Region{}, false
		}
		if chr == r.Chr {
			if pos < r.Start {
				return Region{}, false
			}
			if pos <= r.Stop {
				return *r, true
			}
		}
		c.idx++
	}
	return Region{}, false
}

// Index returns the number of regions the cursor has passed over.  It never
// decreases.
func (c *Cursor) Index() int {
	return c.idx
}
