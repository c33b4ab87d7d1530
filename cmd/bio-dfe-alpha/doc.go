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
bio-dfe-alpha builds the unfolded site frequency spectrum of a population
VCF over a set of candidate sites, together with the number of those sites
fixed for a different allele in an outgroup.  The two outputs are the inputs
a distribution-of-fitness-effects (DFE-alpha) analysis expects for one site
class, typically run once for neutral and once for selected sites.

A candidate site from -sites is used when it lies inside a block aligned to
the outgroup and, if -region is given, inside one of the target regions.
Where the outgroup carries the VCF ALT allele, ALT is ancestral.  For each
qualifying site the number of individuals carrying the derived allele is
counted; an individual that is heterozygous or missing is counted as
derived only when derived homozygotes outnumber ancestral ones at that site.
-gc restricts the sites to one weak/strong substitution class, with the same
codes as bio-estdaf.

The output has two lines:

  c0 c1 ... cN
  total divergent

where ci is the number of sites at which i of the N individuals carry the
derived allele.

All inputs must be sorted by chromosome and position, chromosomes must be
numeric, and the VCF must have a #CHROM header line.

Sample usage:
bio-dfe-alpha \
    -coord ref-outgroup.coords \
    -div ref-outgroup.snps \
    -sites 4fold.tsv \
    -region exons.tsv \
    -vcf calls.vcf.gz
*/
package main
