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
bio-estdaf estimates the derived allele frequency of each gene from a
population VCF, using an outgroup genome to decide which allele at each
variant site is ancestral.

Variant sites count toward a gene when they lie inside the gene and inside
a block aligned to the outgroup.  Where the outgroup carries the VCF ALT
allele (a fixed difference listed by MUMmer show-snps), ALT is taken as
ancestral and REF as derived; elsewhere REF is ancestral.  -gc restricts the
sites to one weak/strong substitution class:

  0  all substitutions
  1  weak to strong (A/T -> C/G)
  2  strong to weak (C/G -> A/T)
  3  strong to strong
  4  weak to weak
  5  strong to strong or weak to weak

The output is a TSV with one row per gene that has at least one qualifying
site:

  gene  DAF  nSites

DAF is the fraction of called genotypes that are homozygous for the derived
allele, or "nan" when no genotype was called.

All inputs must be sorted by chromosome and position, and chromosomes must
be numeric.

Sample usage:
bio-estdaf \
    -coord ref-outgroup.coords \
    -div ref-outgroup.snps \
    -genes genes.tsv \
    -vcf calls.vcf.gz \
    -gc 1 \
    -out daf.tsv
*/
package main
