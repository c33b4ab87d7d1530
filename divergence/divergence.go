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

// Package divergence loads fixed differences between the focal reference
// genome and an outgroup (MUMmer show-snps output) and answers
// forward-only exact-position lookups against them.  A matching site fixes
// the ancestral allele of a variant to the variant's ALT.
package divergence

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/ancestral/coord"
	"github.com/grailbio/ancestral/interval"
	"github.com/grailbio/ancestral/util"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Columns of MUMmer "show-snps -C -I -H -T" output.
const (
	posCol = 0
	refCol = 1
	altCol = 2
	tagCol = 8
)

// Site is a substitution between the reference genome (Ref) and the outgroup
// (Alt) at Chr:Pos.
type Site struct {
	Chr int32
	Pos interval.PosType
	Ref byte
	Alt byte
}

// Coord returns the site's position.
func (s Site) Coord() coord.Coord {
	return coord.Coord{Chr: s.Chr, Pos: s.Pos}
}

func (s Site) String() string {
	return fmt.Sprintf("%d:%d %c>%c", s.Chr, s.Pos, s.Ref, s.Alt)
}

// Table is an immutable list of sites sorted by (Chr, Pos).
type Table struct {
	sites []Site
}

// NewTable wraps sites, which must already be sorted.
func NewTable(sites []Site) *Table {
	return &Table{sites: sites}
}

// Len returns the number of sites.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sites)
}

// At returns the i'th site.
func (t *Table) At(i int) Site {
	return t.sites[i]
}

// NewCursor returns a Cursor positioned before the first site.
func (t *Table) NewCursor() *Cursor {
	c := &Cursor{}
	if t != nil {
		c.sites = t.sites
	}
	return c
}

// Cursor is a forward-only scan position in a Table.
type Cursor struct {
	sites []Site
	idx   int
}

// Lookup returns the site at exactly chr:pos.  Sites before chr:pos are
// passed over for good.  Queries must be issued in nondecreasing (chr, pos)
// order.
func (c *Cursor) Lookup(chr int32, pos interval.PosType) (Site, bool) {
	q := coord.Coord{Chr: chr, Pos: pos}
	for c.idx < len(c.sites) {
		cmp := c.sites[c.idx].Coord().Compare(q)
		if cmp == 0 {
			return c.sites[c.idx], true
		}
		if cmp > 0 {
			return Site{}, false
		}
		c.idx++
	}
	return Site{}, false
}

// Index returns the number of sites the cursor has passed over.
func (c *Cursor) Index() int {
	return c.idx
}

// Read loads substitutions from the tab-separated output of MUMmer
// "show-snps -C -I -H -T": column 0 is the reference position, columns 1
// and 2 the reference and outgroup bases, and column 8 the reference
// sequence tag, which must be a chromosome number; rows with any other tag
// are skipped.
//
// If candidates is non-nil, only sites that are also candidate sites are
// kept.
func Read(r io.Reader, candidates *interval.Sites) (*Table, error) {
	var (
		sites    []Site
		nSkipped int
		nRead    int
		cur      *interval.SiteCursor
	)
	if candidates != nil {
		cur = candidates.NewCursor()
	}
	err := util.ScanRows(r, func(row []string, line int) error {
		if len(row) < tagCol+1 {
			return errors.Errorf("line %d: expected at least %d columns, got %d", line, tagCol+1, len(row))
		}
		chr, ok := util.ParseChr(row[tagCol])
		if !ok {
			nSkipped++
			return nil
		}
		pos, err := util.ParsePos(row[posCol])
		if err != nil {
			return errors.Wrapf(err, "line %d: position", line)
		}
		if row[refCol] == "" || row[altCol] == "" {
			return errors.Errorf("line %d: empty base", line)
		}
		nRead++
		if cur != nil && !cur.Contains(chr, pos) {
			return nil
		}
		sites = append(sites, Site{Chr: chr, Pos: pos, Ref: row[refCol][0], Alt: row[altCol][0]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("divergence.Read: %d of %d site(s) retained, %d non-numeric tag row(s) skipped", len(sites), nRead, nSkipped)
	return NewTable(sites), nil
}

// ReadFromPath is a wrapper for Read that takes a path instead of an
// io.Reader.
func ReadFromPath(ctx context.Context, path string, candidates *interval.Sites) (t *Table, err error) {
	err = util.WithReader(ctx, path, func(r io.Reader) (err error) {
		t, err = Read(r, candidates)
		return
	})
	return
}
