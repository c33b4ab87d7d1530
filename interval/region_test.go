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
	"testing"

	"github.com/grailbio/ancestral/coord"
	"github.com/grailbio/testutil/expect"
)

func TestCursorFind(t *testing.T) {
	x := NewIndex([]Region{
		{Chr: 1, Start: 100, Stop: 200, Label: "a"},
		{Chr: 1, Start: 300, Stop: 400, Label: "b"},
		{Chr: 2, Start: 50, Stop: 60, Label: "c"},
		{Chr: 4, Start: 1, Stop: 10, Label: "d"},
	})
	tests := []struct {
		chr     int32
		pos     PosType
		label   string
		found   bool
		wantIdx int
	}{
		{1, 99, "", false, 0},
		{1, 100, "a", true, 0},
		{1, 200, "a", true, 0},
		{1, 201, "", false, 1},
		{1, 350, "b", true, 1},
		{1, 500, "", false, 2},
		{2, 55, "c", true, 2},
		{3, 5, "", false, 3},
		{4, 10, "d", true, 3},
		{4, 11, "", false, 4},
		{5, 1, "", false, 4},
	}
	c := x.NewCursor()
	for _, tt := range tests {
		r, found := c.Find(tt.chr, tt.pos)
		expect.EQ(t, found, tt.found, "%d:%d", tt.chr, tt.pos)
		expect.EQ(t, r.Label, tt.label, "%d:%d", tt.chr, tt.pos)
		expect.EQ(t, c.Index(), tt.wantIdx, "%d:%d", tt.chr, tt.pos)
	}
}

func TestCursorNeverRewinds(t *testing.T) {
	x := NewIndex([]Region{
		{Chr: 1, Start: 10, Stop: 20},
		{Chr: 2, Start: 10, Stop: 20},
	})
	c := x.NewCursor()
	_, found := c.Find(2, 15)
	expect.True(t, found)
	idx := c.Index()
	// A query on a chromosome behind the cursor is a miss, not a search.
	_, found = c.Find(1, 15)
	expect.False(t, found)
	expect.EQ(t, c.Index(), idx)
}

func TestCursorOverlappingBlocks(t *testing.T) {
	x := NewIndex([]Region{
		{Chr: 1, Start: 10, Stop: 50},
		{Chr: 1, Start: 40, Stop: 100},
	})
	c := x.NewCursor()
	r, found := c.Find(1, 45)
	expect.True(t, found)
	expect.EQ(t, r.Stop, PosType(50))
	r, found = c.Find(1, 60)
	expect.True(t, found)
	expect.EQ(t, r.Stop, PosType(100))
}

func TestCursorEmptyIndex(t *testing.T) {
	var x *Index
	expect.EQ(t, x.Len(), 0)
	_, found := x.NewCursor().Find(1, 1)
	expect.False(t, found)
}

func TestSiteCursorContains(t *testing.T) {
	s := NewSites([]coord.Coord{
		{Chr: 1, Pos: 5},
		{Chr: 1, Pos: 9},
		{Chr: 3, Pos: 2},
	})
	tests := []struct {
		chr   int32
		pos   PosType
		found bool
	}{
		{1, 4, false},
		{1, 5, true},
		{1, 5, true},
		{1, 7, false},
		{1, 9, true},
		{2, 100, false},
		{3, 2, true},
		{3, 3, false},
	}
	c := s.NewCursor()
	prev := 0
	for _, tt := range tests {
		expect.EQ(t, c.Contains(tt.chr, tt.pos), tt.found, "%d:%d", tt.chr, tt.pos)
		expect.True(t, c.Index() >= prev)
		prev = c.Index()
	}
	expect.EQ(t, c.Index(), s.Len())
}
