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
	"math"
	"strconv"

	"github.com/grailbio/ancestral/vcf"
	"github.com/grailbio/base/tsv"
)

// GeneDAFHeader is the first output line of per-gene mode.
var GeneDAFHeader = []string{"gene", "DAF", "nSites"}

// Tally counts, over the individuals of one site, the individuals with both
// alleles called and the individuals homozygous for the derived allele.
// The derived allele is ALT, or REF when reversed is true.  Heterozygous
// individuals are called but never derived.
func Tally(gts []vcf.Genotype, reversed bool) (derived, called int) {
	want := vcf.HomAlt
	if reversed {
		want = vcf.HomRef
	}
	for _, g := range gts {
		if !g.Called() {
			continue
		}
		called++
		if g == want {
			derived++
		}
	}
	return
}

// GeneDAF accumulates the derived-allele frequency of each gene and writes
// one "gene DAF nSites" row whenever the gene changes.  Genes are written in
// input order; a gene without qualifying sites is not written.
type GeneDAF struct {
	w       *tsv.Writer
	started bool
	gene    string
	derived int
	called  int
	sites   int
}

// NewGeneDAF creates a GeneDAF writing TSV rows to w.
func NewGeneDAF(w io.Writer) *GeneDAF {
	return &GeneDAF{w: tsv.NewWriter(w)}
}

// Start implements Aggregator.
func (g *GeneDAF) Start([]string) error {
	return nil
}

// Enter implements Aggregator.  The header is written on the first gene.
func (g *GeneDAF) Enter(label string) error {
	if !g.started {
		g.started = true
		g.gene = label
		for _, col := range GeneDAFHeader {
			g.w.WriteString(col)
		}
		return g.w.EndLine()
	}
	if label == g.gene {
		return nil
	}
	if err := g.flush(); err != nil {
		return err
	}
	g.gene = label
	return nil
}

// Add implements Aggregator.
func (g *GeneDAF) Add(site Site) error {
	derived, called := Tally(site.Genotypes, site.Reversed)
	g.derived += derived
	g.called += called
	g.sites++
	return nil
}

// Finish implements Aggregator.
func (g *GeneDAF) Finish() error {
	if g.started {
		if err := g.flush(); err != nil {
			return err
		}
	}
	return g.w.Flush()
}

func (g *GeneDAF) flush() (err error) {
	if g.sites > 0 {
		g.w.WriteString(g.gene)
		g.w.WriteString(FormatDAF(g.derived, g.called))
		g.w.WriteInt64(int64(g.sites))
		err = g.w.EndLine()
	}
	g.derived, g.called, g.sites = 0, 0, 0
	return
}

// FormatDAF renders derived/called with six decimals, or "nan" when nothing
// was called.
func FormatDAF(derived, called int) string {
	daf := float64(derived) / float64(called)
	if math.IsNaN(daf) {
		return "nan"
	}
	return strconv.FormatFloat(daf, 'f', 6, 64)
}
