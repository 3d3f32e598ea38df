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

/*
bio-rphmm phases the reads in a BAM file into two haplotypes using a
read-partitioning HMM, and reports the chosen haplotype for each read as a
TSV of (read name, haplotype index).
*/

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/readphase/encoding/fasta"
	"github.com/grailbio/readphase/readprofile"
	"github.com/grailbio/readphase/rphmm"
)

var (
	mapq          = flag.Int("mapq", readprofile.DefaultBAMOpts.MapQ, "Reads with MAPQ below this level are skipped")
	flagExclude   = flag.Int("flag-exclude", readprofile.DefaultBAMOpts.FlagExclude, "Reads with a FLAG bit intersecting this value are skipped")
	errRate       = flag.Float64("err-rate", 0.02, "Assumed per-base sequencing error rate")
	postThresh    = flag.Float64("posterior-threshold", rphmm.DefaultParams.PosteriorProbabilityThreshold, "Cells below this posterior are pruned once a column is deep enough to prune")
	minPruneDepth = flag.Int("min-prune-depth", rphmm.DefaultParams.MinColumnDepthToFilter, "Columns shallower than this are never pruned")
	maxCoverage   = flag.Int("max-coverage", rphmm.DefaultParams.MaxCoverageDepth, "Reads beyond this tiling depth are discarded before merging")
	outPath       = flag.String("out", "", "Output TSV path; defaults to stdout")

	refPath   = flag.String("ref", "", "Reference FASTA path (optionally .gz); if set, bampath is ignored and reads are synthesized from this reference instead")
	refIndex  = flag.String("ref-index", "", "Reference .fai index path; if set alongside -ref, the reference is read by seeking instead of loading it whole")
	refSeq    = flag.String("ref-seq", "", "Sequence name within -ref to synthesize reads from; required when -ref is set")
	coverage  = flag.Int("synthetic-coverage", 30, "Approximate per-base read coverage when synthesizing reads from -ref")
	readLen   = flag.Int("synthetic-read-length", 150, "Read length when synthesizing reads from -ref")
	hapDiverg = flag.Float64("synthetic-haplotype-divergence", 0.001, "Per-base probability the two synthesized haplotypes differ, when synthesizing reads from -ref")
	seed      = flag.Int64("synthetic-seed", 1, "Random seed for synthesizing reads from -ref")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] bampath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	params := rphmm.DefaultParams
	params.PosteriorProbabilityThreshold = *postThresh
	params.MinColumnDepthToFilter = *minPruneDepth
	params.MaxCoverageDepth = *maxCoverage
	params.LogSubstitutionMatrix = rphmm.IdentitySubstitutionMatrix(*errRate)

	var profiles []*rphmm.ProfileSequence
	if *refPath != "" {
		if *refSeq == "" {
			log.Fatalf("-ref-seq is required when -ref is set")
		}
		var ref fasta.Fasta
		var err error
		if *refIndex != "" {
			ref, err = readprofile.LoadIndexedReference(*refPath, *refIndex)
		} else {
			ref, err = readprofile.LoadReference(*refPath)
		}
		if err != nil {
			log.Panicf("%v", err)
		}
		opts := readprofile.SynthesizeOpts{
			ReadLength:          *readLen,
			Coverage:            *coverage,
			ErrorRate:           *errRate,
			HaplotypeDivergence: *hapDiverg,
			RandomSeed:          *seed,
		}
		profiles, _, err = readprofile.Synthesize(ref, *refSeq, opts)
		if err != nil {
			log.Panicf("%v", err)
		}
		log.Printf("synthesized %d profile sequences from %s:%s", len(profiles), *refPath, *refSeq)
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("exactly one positional argument (bampath) required, unless -ref is set")
		}
		bamPath := flag.Arg(0)

		bamOpts := readprofile.BAMOpts{MapQ: *mapq, FlagExclude: *flagExclude}
		var err error
		profiles, err = readprofile.FromBAM(bamPath, bamOpts)
		if err != nil {
			log.Panicf("%v", err)
		}
		log.Printf("loaded %d profile sequences from %s", len(profiles), bamPath)
	}

	hmms, err := rphmm.GetRPHmms(profiles, nil, params)
	if err != nil {
		log.Panicf("%v", err)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Panicf("%v", err)
		}
		defer f.Close() // nolint: errcheck
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush() // nolint: errcheck

	for _, h := range hmms {
		path, err := rphmm.ForwardTraceBack(h)
		if err != nil {
			log.Printf("skipping %s:%d-%d: %v", h.RefName(), h.RefStart(), h.RefEnd(), err)
			continue
		}
		for hap := 0; hap < 2; hap++ {
			for seq := range rphmm.PartitionSequencesByStatePath(h, path, hap) {
				fmt.Fprintf(w, "%s\t%d\n", seq.ID, hap)
			}
		}
	}
	log.Debug.Printf("exiting")
}
