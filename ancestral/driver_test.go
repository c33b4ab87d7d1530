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

package ancestral_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/ancestral/ancestral"
	"github.com/grailbio/ancestral/coord"
	"github.com/grailbio/ancestral/divergence"
	"github.com/grailbio/ancestral/interval"
	"github.com/grailbio/ancestral/mutation"
	"github.com/grailbio/ancestral/vcf"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func vcfText(samples []string, rows ...string) string {
	header := "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT"
	for _, s := range samples {
		header += "\t" + s
	}
	return header + "\n" + strings.Join(rows, "")
}

// vcfRow formats a data row; gts are the sample columns.
func vcfRow(chr, pos, ref, alt string, gts ...string) string {
	cols := append([]string{chr, pos, ".", ref, alt, "50", "PASS", ".", "GT"}, gts...)
	return strings.Join(cols, "\t") + "\n"
}

func runGenes(t *testing.T, genes, mask []interval.Region, div []divergence.Site, class mutation.Class, text string) (string, ancestral.Stats) {
	var out bytes.Buffer
	d := ancestral.NewGeneDriver(interval.NewIndex(genes), interval.NewIndex(mask), divergence.NewTable(div), class, ancestral.NewGeneDAF(&out))
	assert.NoError(t, d.Run(vcf.NewScanner(strings.NewReader(text))))
	return out.String(), d.Stats
}

func TestGeneDAFSingleSite(t *testing.T) {
	genes := []interval.Region{{Chr: 1, Start: 120, Stop: 180, Label: "G1"}}
	mask := []interval.Region{{Chr: 1, Start: 100, Stop: 200}}
	text := vcfText([]string{"s1", "s2"}, vcfRow("1", "150", "A", "G", "0/0", "1/1"))

	got, stats := runGenes(t, genes, mask, nil, mutation.WS, text)
	expect.EQ(t, got, "gene\tDAF\tnSites\nG1\t0.500000\t1\n")
	expect.EQ(t, stats.Sites, 1)
	expect.EQ(t, stats.Divergent, 0)

	// A matching divergence site makes ALT ancestral, so A>G is now a
	// strong-to-weak change and the WS filter drops it.
	div := []divergence.Site{{Chr: 1, Pos: 150, Ref: 'A', Alt: 'G'}}
	got, stats = runGenes(t, genes, mask, div, mutation.WS, text)
	expect.EQ(t, got, "gene\tDAF\tnSites\n")
	expect.EQ(t, stats.Rejected, 1)

	got, _ = runGenes(t, genes, mask, div, mutation.SW, text)
	expect.EQ(t, got, "gene\tDAF\tnSites\nG1\t0.500000\t1\n")
}

func TestGeneDAFSeveralGenes(t *testing.T) {
	genes := []interval.Region{
		{Chr: 1, Start: 100, Stop: 200, Label: "G1"},
		{Chr: 1, Start: 300, Stop: 400, Label: "G2"},
		{Chr: 2, Start: 10, Stop: 20, Label: "G3"},
	}
	mask := []interval.Region{
		{Chr: 1, Start: 1, Stop: 1000},
		{Chr: 2, Start: 15, Stop: 100},
	}
	div := []divergence.Site{{Chr: 2, Pos: 18, Ref: 'G', Alt: 'A'}}
	text := vcfText([]string{"s1", "s2"},
		vcfRow("1", "150", "A", "G", "0/0", "1/1"),
		vcfRow("1", "160", "C", "T", "1/1", "./."),
		vcfRow("1", "250", "C", "T", "1/1", "1/1"),
		vcfRow("1", "350", "A", "G", "./.", "./."),
		vcfRow("2", "12", "A", "G", "1/1", "1/1"),
		vcfRow("2", "18", "G", "A", "0/1", "0/0"),
	)
	got, stats := runGenes(t, genes, mask, div, mutation.All, text)
	expect.EQ(t, got, "gene\tDAF\tnSites\n"+
		"G1\t0.666667\t2\n"+
		"G2\tnan\t1\n"+
		"G3\t0.500000\t1\n")
	expect.EQ(t, stats, ancestral.Stats{Records: 6, Outside: 2, Sites: 4, Divergent: 1})
}

func TestGeneDAFSkipsGenesWithoutSites(t *testing.T) {
	genes := []interval.Region{
		{Chr: 1, Start: 100, Stop: 200, Label: "G1"},
		{Chr: 1, Start: 300, Stop: 400, Label: "G2"},
		{Chr: 1, Start: 500, Stop: 600, Label: "G3"},
	}
	mask := []interval.Region{{Chr: 1, Start: 1, Stop: 1000}}
	text := vcfText([]string{"s1"},
		vcfRow("1", "150", "G", "A", "1/1"), // SW
		vcfRow("1", "350", "A", "C", "1/1"), // WS
		vcfRow("1", "550", "C", "T", "1/1"), // SW
	)
	got, stats := runGenes(t, genes, mask, nil, mutation.WS, text)
	expect.EQ(t, got, "gene\tDAF\tnSites\nG2\t1.000000\t1\n")
	expect.EQ(t, stats.Rejected, 2)
}

func TestGeneDAFDivergenceMismatches(t *testing.T) {
	genes := []interval.Region{{Chr: 1, Start: 1, Stop: 1000, Label: "G1"}}
	mask := []interval.Region{{Chr: 1, Start: 1, Stop: 1000}}
	div := []divergence.Site{
		{Chr: 1, Pos: 10, Ref: 'C', Alt: 'G'}, // REF differs
		{Chr: 1, Pos: 20, Ref: 'A', Alt: 'T'}, // ALT differs
		{Chr: 1, Pos: 30, Ref: 'T', Alt: 'C'},
	}
	text := vcfText([]string{"s1", "s2"},
		vcfRow("1", "10", "A", "G", "1/1", "1/1"),
		vcfRow("1", "20", "A", "G", "1/1", "1/1"),
		vcfRow("1", "30", "T", "C", "0/0", "1/1"),
		vcfRow("1", "40", "T", "C", "0/1", "1/1"),
	)
	got, stats := runGenes(t, genes, mask, div, mutation.All, text)
	// Site 30 is reversed (one derived REF homozygote out of two); site 40
	// is not (one derived ALT homozygote out of two).
	expect.EQ(t, got, "gene\tDAF\tnSites\nG1\t0.500000\t2\n")
	expect.EQ(t, stats.RefMismatches, 1)
	expect.EQ(t, stats.AltMismatches, 1)
	expect.EQ(t, stats.Divergent, 1)
}

func TestTally(t *testing.T) {
	gts := []vcf.Genotype{vcf.HomRef, vcf.HomAlt, vcf.Het, vcf.Missing, vcf.HomAlt}
	derived, called := ancestral.Tally(gts, false)
	expect.EQ(t, derived, 2)
	expect.EQ(t, called, 4)
	derived, called = ancestral.Tally(gts, true)
	expect.EQ(t, derived, 1)
	expect.EQ(t, called, 4)
	expect.True(t, derived <= called && called <= len(gts))
}

func TestFormatDAF(t *testing.T) {
	expect.EQ(t, ancestral.FormatDAF(1, 3), "0.333333")
	expect.EQ(t, ancestral.FormatDAF(0, 0), "nan")
	expect.EQ(t, ancestral.FormatDAF(2, 2), "1.000000")
}

func TestDerivedCount(t *testing.T) {
	const (
		r = vcf.HomRef
		a = vcf.HomAlt
		h = vcf.Het
		m = vcf.Missing
	)
	tests := []struct {
		gts      []vcf.Genotype
		reversed bool
		want     int
	}{
		{[]vcf.Genotype{a, a, m}, false, 3},
		{[]vcf.Genotype{a, r, m}, false, 1}, // tie goes to the ancestral side
		{[]vcf.Genotype{a, r, m}, true, 1},
		{[]vcf.Genotype{r, r, m}, true, 3},
		{[]vcf.Genotype{r, r, m}, false, 0},
		{[]vcf.Genotype{a, m, h}, true, 0},
		{[]vcf.Genotype{a, m, h}, false, 3},
		{[]vcf.Genotype{m, m}, false, 0},
		{nil, false, 0},
	}
	for _, tt := range tests {
		expect.EQ(t, ancestral.DerivedCount(tt.gts, tt.reversed), tt.want, "%v reversed=%v", tt.gts, tt.reversed)
	}
}

func TestSFS(t *testing.T) {
	sites := interval.NewSites([]coord.Coord{{Chr: 1, Pos: 10}, {Chr: 1, Pos: 20}, {Chr: 1, Pos: 30}})
	div := divergence.NewTable([]divergence.Site{{Chr: 1, Pos: 20, Ref: 'A', Alt: 'G'}})
	text := vcfText([]string{"s1", "s2"},
		vcfRow("1", "10", "A", "G", "0/0", "1/1"),
		vcfRow("1", "20", "A", "G", "0/0", "0/0"),
		vcfRow("1", "25", "A", "G", "1/1", "1/1"),
	)
	var out bytes.Buffer
	agg := ancestral.NewSFS(&out)
	d := ancestral.NewSiteDriver(sites, div, mutation.All, agg)
	assert.NoError(t, d.Run(vcf.NewScanner(strings.NewReader(text))))
	expect.EQ(t, out.String(), "0 1 1\n2 1\n")

	total, divergent := agg.Counts()
	var sum int64
	for _, n := range agg.Histogram() {
		sum += n
	}
	expect.EQ(t, sum, total)
	expect.True(t, divergent <= total)
	expect.EQ(t, d.Stats.Outside, 1)
}

func TestSFSNoSites(t *testing.T) {
	var out bytes.Buffer
	d := ancestral.NewSiteDriver(interval.NewSites(nil), divergence.NewTable(nil), mutation.WS, ancestral.NewSFS(&out))
	assert.NoError(t, d.Run(vcf.NewScanner(strings.NewReader(vcfText([]string{"a", "b", "c"})))))
	expect.EQ(t, out.String(), "0 0 0 0\n0 0\n")
}

func TestSFSRequiresHeader(t *testing.T) {
	var out bytes.Buffer
	d := ancestral.NewSiteDriver(interval.NewSites(nil), divergence.NewTable(nil), mutation.All, ancestral.NewSFS(&out))
	err := d.Run(vcf.NewScanner(strings.NewReader(vcfRow("1", "10", "A", "G", "0/0"))))
	expect.True(t, err != nil)
}
