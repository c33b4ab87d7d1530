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
	"github.com/grailbio/ancestral/divergence"
	"github.com/grailbio/ancestral/interval"
	"github.com/grailbio/ancestral/mutation"
	"github.com/grailbio/ancestral/vcf"
	"github.com/grailbio/base/log"
	"v.io/x/lib/vlog"
)

// Site is a variant that passed every filter, annotated with its group
// label (the gene, in per-gene mode) and its ancestral direction.
type Site struct {
	*vcf.Record
	Label string
	// Reversed is true iff the outgroup confirms ALT as the ancestral allele.
	Reversed bool
}

// Aggregator folds qualifying sites into output rows.
type Aggregator interface {
	// Start is called once, after the VCF header (if any) has been read and
	// before any other method.  samples is nil when the VCF has no #CHROM
	// line.
	Start(samples []string) error
	// Enter is called for each variant inside a usable region, before its
	// divergence and class checks, with the region's label.
	Enter(label string) error
	// Add is called for each qualifying site.  site.Record is reused by the
	// next call.
	Add(site Site) error
	// Finish is called once at the end of the stream.
	Finish() error
}

// locator decides whether a variant position is usable and names the group
// it belongs to.
type locator interface {
	locate(chr int32, pos interval.PosType) (label string, ok bool)
}

// geneLocator admits positions inside a gene and an alignable block.
type geneLocator struct {
	genes, mask *interval.Cursor
}

func (l *geneLocator) locate(chr int32, pos interval.PosType) (string, bool) {
	gene, ok := l.genes.Find(chr, pos)
	if !ok {
		return "", false
	}
	if _, ok = l.mask.Find(chr, pos); !ok {
		return "", false
	}
	return gene.Label, true
}

// siteLocator admits the candidate sites, which were already filtered
// against the alignable blocks and target regions when loaded.
type siteLocator struct {
	sites *interval.SiteCursor
}

func (l *siteLocator) locate(chr int32, pos interval.PosType) (string, bool) {
	return "", l.sites.Contains(chr, pos)
}

// Stats counts what happened to the variant records of a run.
type Stats struct {
	// Records is the number of data rows read.
	Records int
	// Outside counts rows outside every usable region or site.
	Outside int
	// RefMismatches counts divergence sites whose reference base differs
	// from the VCF REF.
	RefMismatches int
	// AltMismatches counts divergence sites whose outgroup base differs
	// from the VCF ALT.
	AltMismatches int
	// Rejected counts rows the mutation class excluded.
	Rejected int
	// Sites is the number of qualifying sites.
	Sites int
	// Divergent is the number of qualifying sites matched by a divergence
	// site.
	Divergent int
}

// Driver joins a sorted VCF stream against the sorted region, alignment and
// divergence inputs in a single forward pass and feeds qualifying sites to
// an Aggregator.  Every lookup uses a forward-only cursor, so a run is
// linear in the total size of the inputs.
type Driver struct {
	loc   locator
	div   *divergence.Cursor
	class mutation.Class
	agg   Aggregator

	Stats Stats
}

// NewGeneDriver creates a Driver that admits variants inside both a gene and
// an alignable block, labelling each with its gene.
func NewGeneDriver(genes, mask *interval.Index, div *divergence.Table, class mutation.Class, agg Aggregator) *Driver {
	return &Driver{
		loc:   &geneLocator{genes: genes.NewCursor(), mask: mask.NewCursor()},
		div:   div.NewCursor(),
		class: class,
		agg:   agg,
	}
}

// NewSiteDriver creates a Driver that admits variants at the given sites.
func NewSiteDriver(sites *interval.Sites, div *divergence.Table, class mutation.Class, agg Aggregator) *Driver {
	return &Driver{
		loc:   &siteLocator{sites: sites.NewCursor()},
		div:   div.NewCursor(),
		class: class,
		agg:   agg,
	}
}

// Run consumes s to the end.
func (d *Driver) Run(s *vcf.Scanner) error {
	var (
		rec     vcf.Record
		started bool
	)
	for s.Scan(&rec) {
		if !started {
			started = true
			if err := d.agg.Start(s.Samples()); err != nil {
				return err
			}
		}
		d.Stats.Records++
		if err := d.process(&rec); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	if !started {
		if err := d.agg.Start(s.Samples()); err != nil {
			return err
		}
	}
	log.Printf("ancestral.Driver: %d record(s), %d outside regions, %d ref mismatch(es), %d alt mismatch(es), %d rejected by class %v, %d site(s) (%d divergent)",
		d.Stats.Records, d.Stats.Outside, d.Stats.RefMismatches, d.Stats.AltMismatches,
		d.Stats.Rejected, d.class, d.Stats.Sites, d.Stats.Divergent)
	return d.agg.Finish()
}

func (d *Driver) process(rec *vcf.Record) error {
	label, ok := d.loc.locate(rec.Chr, rec.Pos)
	if !ok {
		d.Stats.Outside++
		return nil
	}
	if err := d.agg.Enter(label); err != nil {
		return err
	}
	div, reversed := d.div.Lookup(rec.Chr, rec.Pos)
	if reversed {
		if rec.Ref != div.Ref {
			log.Error.Printf("ref alleles differ at chr %d pos %d", rec.Chr, rec.Pos)
			d.Stats.RefMismatches++
			return nil
		}
		if rec.Alt != div.Alt {
			vlog.VI(1).Infof("skip %d:%d: ALT %c, outgroup %c", rec.Chr, rec.Pos, rec.Alt, div.Alt)
			d.Stats.AltMismatches++
			return nil
		}
	}
	if !mutation.Include(rec.Ref, rec.Alt, reversed, d.class) {
		vlog.VI(1).Infof("skip %d:%d: %c>%c (reversed=%v) not in class %v", rec.Chr, rec.Pos, rec.Ref, rec.Alt, reversed, d.class)
		d.Stats.Rejected++
		return nil
	}
	d.Stats.Sites++
	if reversed {
		d.Stats.Divergent++
	}
	return d.agg.Add(Site{Record: rec, Label: label, Reversed: reversed})
}
