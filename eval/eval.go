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

// Package eval classifies predicted CNV calls against a ground-truth ("mock")
// CNV table.  For every ground-truth region it finds the overlapping
// predictions on the same sample and chromosome, reduces multiple hits to the
// single longest one, and decides whether the region was correctly detected.
package eval

import (
	"context"
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/cnv"
)

// Opts configures Classify.
type Opts struct {
	// OverlapLow and OverlapHigh bound the overlap-length percentage band,
	// exclusive on both ends, inside which a correctly-stated variant call
	// also counts as predicted-by-overlap.
	OverlapLow  float64
	OverlapHigh float64
	// Parallelism is the maximum number of simultaneous classification jobs;
	// 0 = runtime.NumCPU().
	Parallelism int
	// WarnAmbiguous logs a warning when several equally long predictions
	// overlap one ground-truth region.  The first one encountered is kept
	// either way.
	WarnAmbiguous bool
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	OverlapLow:    80,
	OverlapHigh:   120,
	Parallelism:   0,
	WarnAmbiguous: true,
}

// Result is the classification of one ground-truth CNV against the predicted
// call set.  It embeds the ground-truth call, so one Result row carries every
// input column plus the appended classification columns.
type Result struct {
	cnv.Call

	// Present is true when the ground-truth row describes a real variant
	// (CN != 2).
	Present bool
	// Predicted is true when the detection algorithm found the region: for a
	// variant row, the longest overlapping prediction has the same CN; for a
	// diploid row, some prediction lies strictly inside the region.
	Predicted bool
	// OverlapPctLen is 100 * (bases shared with the longest overlapping
	// prediction) / ground-truth Length.
	OverlapPctLen float64
	// OverlapPctSNP is 100 * (longest overlapping prediction's NumSNPs) /
	// ground-truth NumSNPs.
	OverlapPctSNP float64
	// MockID is the ground-truth region's label, repeated for convenience.
	MockID string
	// PredID is the matched prediction's label, or empty if there was none.
	PredID string
	// PredCN is the matched prediction's copy-number state; defaults to the
	// normal diploid state when nothing overlapped.
	PredCN int
	// NumCNVs is the number of predictions overlapping the ground-truth
	// region, before multiplicity reduction.
	NumCNVs int
	// PredictedByOverlap additionally requires the overlap percentage to fall
	// inside (OverlapLow, OverlapHigh) for variant rows.  For diploid rows it
	// equals Predicted; the overlap ratio is irrelevant there.
	PredictedByOverlap bool
}

// Classify produces one Result per ground-truth call, in input order.  pred
// must be frozen (or otherwise not mutated) for the duration of the call;
// rows are classified in parallel.
func Classify(ctx context.Context, truth []cnv.Call, pred *cnv.CallSet, opts Opts) ([]Result, error) {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	pred.Freeze()
	nRows := len(truth)
	results := make([]Result, nRows)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * nRows) / parallelism
		endIdx := ((jobIdx + 1) * nRows) / parallelism
		for i := startIdx; i < endIdx; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = classifyOne(&truth[i], pred, &opts)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// classifyOne implements the per-row rules.  It never fails: zero overlapping
// predictions is the ordinary "missed call" outcome, not an error.
func classifyOne(g *cnv.Call, pred *cnv.CallSet, opts *Opts) Result {
	r := Result{
		Call:    *g,
		Present: g.IsVariant(),
		MockID:  g.CNVID,
		PredCN:  cnv.NormalCN,
	}
	matches := pred.Overlapping(g.SampleID, g.Chr, g.Start, g.Stop)
	r.NumCNVs = len(matches)
	if len(matches) == 0 {
		return r
	}

	// Multiplicity reduction: longest wins, first-encountered on ties.  The
	// tie-break intentionally ignores overlap quality for compatibility with
	// the established pipeline output.
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Length > best.Length {
			best = m
		}
	}
	if opts.WarnAmbiguous {
		nBest := 0
		for _, m := range matches {
			if m.Length == best.Length {
				nBest++
			}
		}
		if nBest > 1 {
			log.Printf("eval: %d equally long predictions overlap %s; keeping %s", nBest, g, best)
		}
	}

	if g.Length > 0 {
		r.OverlapPctLen = 100 * float64(g.OverlapSpan(best)) / float64(g.Length)
	}
	if g.NumSNPs > 0 {
		r.OverlapPctSNP = 100 * float64(best.NumSNPs) / float64(g.NumSNPs)
	}
	r.PredID = best.CNVID
	r.PredCN = best.CN

	if !g.IsVariant() {
		// Ground truth says diploid.  The region counts as (falsely)
		// predicted only when some overlapping prediction sits strictly
		// inside it; partial overlap from a neighboring region does not
		// count, and the overlap band does not apply.
		for _, m := range matches {
			if g.StrictlyContains(m) {
				r.Predicted = true
				r.PredictedByOverlap = true
				break
			}
		}
		return r
	}
	if best.CN == g.CN {
		r.Predicted = true
		if r.OverlapPctLen > opts.OverlapLow && r.OverlapPctLen < opts.OverlapHigh {
			r.PredictedByOverlap = true
		}
	}
	// A CN mismatch leaves Predicted false even though NumCNVs > 0: the
	// prediction exists but is in the wrong state.
	return r
}
