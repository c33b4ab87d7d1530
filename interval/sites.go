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

import (
	"context"
	"io"

	"github.com/grailbio/ancestral/coord"
	"github.com/grailbio/ancestral/util"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Sites is an immutable sorted list of single positions, e.g. the 0-fold or
// 4-fold degenerate sites a site frequency spectrum is computed over.
type Sites struct {
	coords []coord.Coord
}

// NewSites wraps coords, which must already be sorted.
func NewSites(coords []coord.Coord) *Sites {
	return &Sites{coords: coords}
}

// Len returns the number of sites.
func (s *Sites) Len() int {
	if s == nil {
		return 0
	}
	return len(s.coords)
}

// At returns the i'th site.
func (s *Sites) At(i int) coord.Coord {
	return s.coords[i]
}

// NewCursor returns a SiteCursor positioned before the first site.
func (s *Sites) NewCursor() *SiteCursor {
	c := &SiteCursor{}
	if s != nil {
		c.coords = s.coords
	}
	return c
}

// SiteCursor is a forward-only scan position in a Sites list.
type SiteCursor struct {
	coords []coord.Coord
	idx    int
}

// Contains returns true iff chr:pos is in the list.  Queries must be issued
// in nondecreasing (chr, pos) order.
func (c *SiteCursor) Contains(chr int32, pos PosType) bool {
	q := coord.Coord{Chr: chr, Pos: pos}
	for c.idx < len(c.coords) {
		cmp := c.coords[c.idx].Compare(q)
		if cmp == 0 {
			return true
		}
		if cmp > 0 {
			return false
		}
		c.idx++
	}
	return false
}

// Index returns the number of sites the cursor has passed over.
func (c *SiteCursor) Index() int {
	return c.idx
}

// ReadSites loads (chromosome, position) rows, keeping the positions that
// lie in an alignable block of mask and, when targets is nonempty, in one of
// the target regions.  Rows that do not start with a digit are skipped.
func ReadSites(r io.Reader, mask, targets *Index) (*Sites, error) {
	var (
		coords     []coord.Coord
		nRead      int
		maskCur    = mask.NewCursor()
		targetCur  = targets.NewCursor()
		useTargets = targets.Len() > 0
	)
	err := util.ScanRows(r, func(row []string, line int) error {
		if !util.IsDigitLed(row[0]) {
			return nil
		}
		if len(row) < 2 {
			return errors.Errorf("line %d: expected at least 2 columns, got %d", line, len(row))
		}
		chr, ok := util.ParseChr(row[0])
		if !ok {
			return errors.Errorf("line %d: chromosome %q out of range", line, row[0])
		}
		pos, err := util.ParsePos(row[1])
		if err != nil {
			return errors.Wrapf(err, "line %d: position", line)
		}
		nRead++
		if _, ok := maskCur.Find(chr, pos); !ok {
			return nil
		}
		if useTargets {
			if _, ok := targetCur.Find(chr, pos); !ok {
				return nil
			}
		}
		coords = append(coords, coord.Coord{Chr: chr, Pos: pos})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("interval.ReadSites: %d of %d site(s) retained", len(coords), nRead)
	return NewSites(coords), nil
}

// ReadSitesFromPath is a wrapper for ReadSites that takes a path instead of
// an io.Reader.
func ReadSitesFromPath(ctx context.Context, path string, mask, targets *Index) (s *Sites, err error) {
	err = util.WithReader(ctx, path, func(r io.Reader) (err error) {
		s, err = ReadSites(r, mask, targets)
		return
	})
	return
}
