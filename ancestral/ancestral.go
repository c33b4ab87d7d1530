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

/*
Package ancestral classifies variant sites by ancestral/derived state and
aggregates allele frequencies over them.

Four inputs, all sorted by (chromosome, position), are joined in a single
forward pass:
  - alignable blocks between the focal genome and an outgroup (MUMmer
    show-coords),
  - gene regions (per-gene mode) or candidate sites with optional target
    regions (spectrum mode),
  - fixed differences from the outgroup (MUMmer show-snps), which mark the
    VCF ALT as the ancestral allele,
  - the VCF itself.
Each VCF record that lands in a usable region is checked against the
divergence sites, filtered by weak/strong mutation class, and handed to an
Aggregator: GeneDAF writes per-gene derived-allele frequencies, SFS writes a
site frequency spectrum with total and divergent site counts.

Sort order is a precondition and is not checked.
*/
package ancestral

import (
	"context"
	"io"

	"github.com/grailbio/ancestral/divergence"
	"github.com/grailbio/ancestral/interval"
	"github.com/grailbio/ancestral/util"
	"github.com/grailbio/ancestral/vcf"
)

// RunDAF writes per-gene derived-allele frequencies for opts to w.
func RunDAF(ctx context.Context, opts *Opts, w io.Writer) error {
	if err := opts.ValidateDAF(); err != nil {
		return err
	}
	genes, err := interval.ReadGenesFromPath(ctx, opts.GenesPath)
	if err != nil {
		return err
	}
	mask, err := interval.ReadAlignmentFromPath(ctx, opts.CoordPath)
	if err != nil {
		return err
	}
	div, err := divergence.ReadFromPath(ctx, opts.DivPath, nil)
	if err != nil {
		return err
	}
	d := NewGeneDriver(genes, mask, div, opts.Class, NewGeneDAF(w))
	return runVCF(ctx, opts.VCFPath, d)
}

// RunSFS writes the site frequency spectrum and divergence counts for opts
// to w.
func RunSFS(ctx context.Context, opts *Opts, w io.Writer) error {
	if err := opts.ValidateSFS(); err != nil {
		return err
	}
	mask, err := interval.ReadAlignmentFromPath(ctx, opts.CoordPath)
	if err != nil {
		return err
	}
	var targets *interval.Index
	if opts.RegionPath != "" {
		if targets, err = interval.ReadTargetsFromPath(ctx, opts.RegionPath); err != nil {
			return err
		}
	}
	sites, err := interval.ReadSitesFromPath(ctx, opts.SitesPath, mask, targets)
	if err != nil {
		return err
	}
	div, err := divergence.ReadFromPath(ctx, opts.DivPath, sites)
	if err != nil {
		return err
	}
	d := NewSiteDriver(sites, div, opts.Class, NewSFS(w))
	return runVCF(ctx, opts.VCFPath, d)
}

func runVCF(ctx context.Context, path string, d *Driver) error {
	return util.WithReader(ctx, path, func(r io.Reader) error {
		return d.Run(vcf.NewScanner(r))
	})
}
