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

// Package coord defines the (chromosome, position) key that every sorted
// input of this module is ordered by.
package coord

// Coord is a 1-based genomic position on a numbered chromosome.
type Coord struct {
	Chr int32
	Pos int32
}

// Compare returns (negative int, 0, positive int) if (r<r1, r=r1, r>r1)
// respectively.
func (r Coord) Compare(r1 Coord) int {
	if r.Chr != r1.Chr {
		return int(r.Chr - r1.Chr)
	}
	return int(r.Pos - r1.Pos)
}

// LT returns true iff r < r1.
func (r Coord) LT(r1 Coord) bool {
	return r.Compare(r1) < 0
}

// LE returns true iff r <= r1
func (r Coord) LE(r1 Coord) bool {
	return r.Compare(r1) <= 0
}

// GT return true iff r > r1
func (r Coord) GT(r1 Coord) bool {
	return r.Compare(r1) > 0
}

// EQ returns true iff r = r1.
func (r Coord) EQ(r1 Coord) bool {
	return r.Chr == r1.Chr && r.Pos == r1.Pos
}
