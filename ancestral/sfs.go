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

package ancestral

import (
	"io"
	"strconv"

	"github.com/grailbio/ancestral/vcf"
	"github.com/grailbio/base/errors"
)

// DerivedCount returns the number of individuals carrying the derived
// allele at one site, for the site frequency spectrum.  Individuals without
// a homozygous call are imputed by majority: they count as derived iff the
// derived homozygotes strictly outnumber the ancestral ones, so ties go to
// the ancestral side.  The derived allele is ALT, or REF when reversed is
// true.
func DerivedCount(gts []vcf.Genotype, reversed bool) int {
	var nDerived, nAncestral, nOther int
	for _, g := range gts {
		switch g {
		case vcf.HomAlt:
			if reversed {
				nAncestral++
			} else {
				nDerived++
			}
		case vcf.HomRef:
			if reversed {
				nDerived++
			} else {
				nAncestral++
			}
		default:
			nOther++
		}
	}
	if nDerived > nAncestral {
		return nDerived + nOther
	}
	return nDerived
}

// SFS accumulates the unfolded site frequency spectrum of the qualifying
// sites together with the number of sites and of divergent sites, the input
// format DFE-alpha expects.
type SFS struct {
	w         io.Writer
	hist      []int64
	total     int64
	divergent int64
}

// NewSFS creates an SFS that writes to w when finished.
func NewSFS(w io.Writer) *SFS {
	return &SFS{w: w}
}

// Start implements Aggregator.  The spectrum has one bin per possible
// derived count, 0 through len(samples).
func (s *SFS) Start(samples []string) error {
	if samples == nil {
		return errors.E(errors.Invalid, "VCF has no #CHROM header line; the number of individuals is unknown")
	}
	s.hist = make([]int64, len(samples)+1)
	return nil
}

// Enter implements Aggregator.
func (s *SFS) Enter(string) error {
	return nil
}

// Add implements Aggregator.
func (s *SFS) Add(site Site) error {
	s.hist[DerivedCount(site.Genotypes, site.Reversed)]++
	s.total++
	if site.Reversed {
		s.divergent++
	}
	return nil
}

// Histogram returns the spectrum accumulated so far.
func (s *SFS) Histogram() []int64 {
	return s.hist
}

// Counts returns the number of sites and of divergent sites.
func (s *SFS) Counts() (total, divergent int64) {
	return s.total, s.divergent
}

// Finish implements Aggregator.  It writes the spectrum on one line and
// "total divergent" on the next.
func (s *SFS) Finish() error {
	var buf []byte
	for i, n := range s.hist {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, n, 10)
	}
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, s.total, 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, s.divergent, 10)
	buf = append(buf, '\n')
	_, err := s.w.Write(buf)
	return err
}
