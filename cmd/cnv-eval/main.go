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
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/cnv"
	"github.com/grailbio/cnv/encoding/cnvtsv"
	"github.com/grailbio/cnv/eval"
)

var (
	out         = flag.String("out", "cnv-eval.tsv", "Output TSV path; a .gz suffix selects bgzip compression")
	region      = flag.String("region", "", "Restrict evaluation to the specified region. Format as <chr>:<1-based first pos>-<last pos>, <chr>:<1-based pos>, or just <chr>; default is the whole genome")
	overlapLow  = flag.Float64("overlap-low", eval.DefaultOpts.OverlapLow, "Lower bound (exclusive) of the overlap-percentage band for PredictedByOverlap")
	overlapHigh = flag.Float64("overlap-high", eval.DefaultOpts.OverlapHigh, "Upper bound (exclusive) of the overlap-percentage band for PredictedByOverlap")
	parallelism = flag.Int("parallelism", 0, "Maximum number of simultaneous classification jobs; 0 = runtime.NumCPU()")
	summary     = flag.Bool("summary", true, "Print a classification summary to stdout")
	bySample    = flag.Bool("by-sample", false, "Break the summary down per sample ID")
	warnAmbig   = flag.Bool("warn-ambiguous", true, "Log a warning when several equally long predictions overlap one mock region")
)

func cnvEvalUsage() {
	fmt.Printf("Usage: %s [OPTIONS] mockpath predpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func evalMain(ctx context.Context, mockPath, predPath string) error {
	mock, err := cnvtsv.ReadCalls(ctx, mockPath, cnvtsv.ReadOpts{RequireLabel: true})
	if err != nil {
		return err
	}
	predCalls, err := cnvtsv.ReadCalls(ctx, predPath, cnvtsv.ReadOpts{})
	if err != nil {
		return err
	}
	if *region != "" {
		reg, err := cnv.ParseRegionString(*region)
		if err != nil {
			return err
		}
		mock = reg.FilterCalls(mock)
		predCalls = reg.FilterCalls(predCalls)
	}
	pred := cnv.NewCallSet()
	for _, c := range predCalls {
		pred.Add(c)
	}
	log.Printf("loaded %d mock call(s), %d predicted call(s) across %d sample(s)",
		len(mock), pred.Len(), pred.NumSamples())

	opts := eval.Opts{
		OverlapLow:    *overlapLow,
		OverlapHigh:   *overlapHigh,
		Parallelism:   *parallelism,
		WarnAmbiguous: *warnAmbig,
	}
	results, err := eval.Classify(ctx, mock, pred, opts)
	if err != nil {
		return err
	}
	if err := cnvtsv.WriteResults(ctx, *out, results, *parallelism); err != nil {
		return err
	}
	if *summary {
		if *bySample {
			summaries, samples := eval.SummarizeBySample(results)
			fmt.Printf("SAMPLE\t%s\n", eval.SummaryHeader)
			for _, sample := range samples {
				s := summaries[sample]
				fmt.Printf("%s\t%s\n", sample, s.String())
			}
		} else {
			s := eval.Summarize(results)
			fmt.Printf("%s\n%s\n", eval.SummaryHeader, s.String())
		}
	}
	return nil
}

func main() {
	flag.Usage = cnvEvalUsage
	shutdown := grail.Init()
	defer shutdown()

	allArgs := flag.Args()
	nPositionalArgs := flag.NArg()
	positionalArgs := allArgs[len(allArgs)-nPositionalArgs:]
	if nPositionalArgs != 2 {
		if nPositionalArgs < 2 {
			log.Fatalf("Missing positional arguments (mockpath and predpath required); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		} else {
			log.Fatalf("Too many positional arguments (only mockpath and predpath expected); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
		}
	}
	ctx := vcontext.Background()
	if err := evalMain(ctx, positionalArgs[0], positionalArgs[1]); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
