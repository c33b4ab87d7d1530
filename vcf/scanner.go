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

// Package vcf streams the biallelic SNP records of a VCF file, reducing each
// sample column to a homozygous-reference / homozygous-alternate /
// heterozygous / missing call.
package vcf

import (
	"io"

	"github.com/grailbio/ancestral/interval"
	"github.com/grailbio/ancestral/util"
	"github.com/pkg/errors"
)

const (
	chromCol  = 0
	posCol    = 1
	refCol    = 3
	altCol    = 4
	sampleCol = 9

	headerTag = "#CHROM"
)

// Genotype is a diploid call reduced to what allele-frequency counting needs.
type Genotype byte

const (
	// Missing means at least one allele is '.'.
	Missing Genotype = iota
	// HomRef is 0/0.
	HomRef
	// HomAlt is 1/1.
	HomAlt
	// Het is any other called genotype, e.g. 0/1.
	Het
)

func (g Genotype) String() string {
	switch g {
	case HomRef:
		return "0/0"
	case HomAlt:
		return "1/1"
	case Het:
		return "het"
	}
	return "./."
}

// Called returns true iff both alleles are known.
func (g Genotype) Called() bool {
	return g != Missing
}

// ParseGenotype reads the alleles from the first and third bytes of a
// sample column ("0/1", "1|1:35:...").  A one-byte column such as "." or
// "1" is read as both alleles.
func ParseGenotype(s string) Genotype {
	if len(s) == 0 {
		return Missing
	}
	a, b := s[0], s[0]
	if len(s) >= 3 {
		b = s[2]
	}
	switch {
	case a == '.' || b == '.':
		return Missing
	case a == '0' && b == '0':
		return HomRef
	case a == '1' && b == '1':
		return HomAlt
	}
	return Het
}

// Record is one data row.  Only the first byte of REF and ALT is kept.
type Record struct {
	Chr       int32
	Pos       interval.PosType
	Ref       byte
	Alt       byte
	Genotypes []Genotype
	// Line is the 1-based index of the row among nonblank lines.
	Line int
}

// Scanner reads Records from a VCF stream.  Meta-information lines and rows
// whose CHROM does not start with a digit are skipped.  Like
// bufio.Scanner, Scan returns false at the end of input or on the first
// error, which Err then reports.  Scanners are not threadsafe.
type Scanner struct {
	s       *util.TSVScanner
	samples []string
	err     error
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: util.NewTSVScanner(r)}
}

// Samples returns the sample names from the #CHROM header line, or nil if
// no header has been read yet.
func (s *Scanner) Samples() []string {
	return s.samples
}

// Scan reads the next record into rec, reusing rec.Genotypes.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		row := s.s.Row()
		if row[chromCol] == headerTag {
			s.samples = make([]string, 0, len(row))
			if len(row) > sampleCol {
				s.samples = append(s.samples, row[sampleCol:]...)
			}
			continue
		}
		if !util.IsDigitLed(row[chromCol]) {
			continue
		}
		if s.err = s.parse(row, rec); s.err != nil {
			return false
		}
		return true
	}
	s.err = s.s.Err()
	return false
}

func (s *Scanner) parse(row []string, rec *Record) (err error) {
	line := s.s.Line()
	if len(row) <= altCol {
		return errors.Errorf("vcf line %d: expected at least %d columns, got %d", line, altCol+1, len(row))
	}
	var ok bool
	if rec.Chr, ok = util.ParseChr(row[chromCol]); !ok {
		return errors.Errorf("vcf line %d: chromosome %q out of range", line, row[chromCol])
	}
	if rec.Pos, err = util.ParsePos(row[posCol]); err != nil {
		return errors.Wrapf(err, "vcf line %d: POS", line)
	}
	if row[refCol] == "" || row[altCol] == "" {
		return errors.Errorf("vcf line %d: empty REF or ALT", line)
	}
	rec.Ref = row[refCol][0]
	rec.Alt = row[altCol][0]
	rec.Line = line
	rec.Genotypes = rec.Genotypes[:0]
	if len(row) > sampleCol {
		for _, col := range row[sampleCol:] {
			rec.Genotypes = append(rec.Genotypes, ParseGenotype(col))
		}
	}
	if s.samples != nil && len(rec.Genotypes) != len(s.samples) {
		return errors.Errorf("vcf line %d: %d genotype column(s), but the header names %d sample(s)", line, len(rec.Genotypes), len(s.samples))
	}
	return nil
}

// Err returns the first error encountered, or nil at a clean end of input.
func (s *Scanner) Err() error {
	return s.err
}
