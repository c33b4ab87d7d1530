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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grailbio/ancestral/ancestral"
	"github.com/grailbio/ancestral/mutation"
	"github.com/grailbio/ancestral/util"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	coordPath = flag.String("coord", ancestral.DefaultOpts.CoordPath, "MUMmer 'show-coords -H -T' output listing the blocks aligned to the outgroup (required)")
	divPath   = flag.String("div", ancestral.DefaultOpts.DivPath, "MUMmer 'show-snps -C -I -H -T' output listing fixed differences from the outgroup (required)")
	vcfPath   = flag.String("vcf", ancestral.DefaultOpts.VCFPath, "Input VCF, optionally gzipped (required)")
	genesPath = flag.String("genes", ancestral.DefaultOpts.GenesPath, "Gene TSV: name, chromosome, start, stop (required)")
	gc        = flag.Int("gc", int(ancestral.DefaultOpts.Class), "Mutation class: 0=all, 1=WS, 2=SW, 3=SS, 4=WW, 5=SS+WW")
	outPath   = flag.String("out", "", "Output path; stdout if empty, gzipped if it ends in .gz")
)

func bioEstDAFUsage() {
	fmt.Printf("Usage: %s -coord path -div path -genes path -vcf path [OPTIONS]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioEstDAFUsage
	shutdown := grail.Init()
	defer shutdown()
	start := time.Now()

	if flag.NArg() > 0 {
		log.Fatalf("Unexpected positional arguments; please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	class, err := mutation.ParseClass(*gc)
	if err != nil {
		log.Fatalf("-gc: %v", err)
	}
	opts := ancestral.Opts{
		CoordPath: *coordPath,
		DivPath:   *divPath,
		VCFPath:   *vcfPath,
		GenesPath: *genesPath,
		Class:     class,
	}
	if err := opts.ValidateDAF(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("bio-estdaf: coord=%s div=%s genes=%s vcf=%s class=%v", opts.CoordPath, opts.DivPath, opts.GenesPath, opts.VCFPath, opts.Class)

	ctx := vcontext.Background()
	out, err := util.Create(ctx, *outPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := ancestral.RunDAF(ctx, &opts, out.Writer()); err != nil {
		log.Fatalf("%v", err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("close %s: %v", *outPath, err)
	}
	log.Printf("bio-estdaf: run time %v", time.Since(start))
}
