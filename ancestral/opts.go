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
	"fmt"

	"github.com/grailbio/ancestral/mutation"
	"github.com/grailbio/base/errors"
)

// Opts holds the inputs of a run.  Every path may name a local file or any
// location grailbio/base/file can open, optionally gzip-compressed.
type Opts struct {
	// CoordPath is MUMmer "show-coords -H -T" output: the alignable blocks.
	CoordPath string
	// DivPath is MUMmer "show-snps -C -I -H -T" output: fixed differences
	// from the outgroup.
	DivPath string
	// VCFPath is the variant stream.
	VCFPath string
	// GenesPath lists (name, chromosome, start, stop).  Per-gene mode only.
	GenesPath string
	// SitesPath lists (chromosome, position) of the sites to build the
	// spectrum over.  Spectrum mode only.
	SitesPath string
	// RegionPath optionally restricts the spectrum sites to (chromosome,
	// start, stop) regions.
	RegionPath string
	// Class restricts the substitutions counted.
	Class mutation.Class
}

// DefaultOpts counts every substitution.
var DefaultOpts = Opts{
	Class: mutation.All,
}

type required struct {
	flag, path string
}

func (o *Opts) validate(reqs ...required) error {
	var missing []string
	for _, r := range reqs {
		if r.path == "" {
			missing = append(missing, r.flag)
		}
	}
	if len(missing) > 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("missing required input(s): %v", missing))
	}
	if _, err := mutation.ParseClass(int(o.Class)); err != nil {
		return errors.E(errors.Invalid, err)
	}
	return nil
}

// ValidateDAF checks that o names every input per-gene mode needs.
func (o *Opts) ValidateDAF() error {
	return o.validate(
		required{"-coord", o.CoordPath},
		required{"-div", o.DivPath},
		required{"-vcf", o.VCFPath},
		required{"-genes", o.GenesPath})
}

// ValidateSFS checks that o names every input spectrum mode needs.
func (o *Opts) ValidateSFS() error {
	return o.validate(
		required{"-coord", o.CoordPath},
		required{"-div", o.DivPath},
		required{"-sites", o.SitesPath},
		required{"-vcf", o.VCFPath})
}
