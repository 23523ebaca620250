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
package eval

import (
	"fmt"
	"sort"
)

// Summary aggregates per-row classifications into the sensitivity/precision
// signals the pipeline dashboards consume.
type Summary struct {
	// TrueVariants is the number of ground-truth rows with CN != 2.
	TrueVariants int

	// Detected is the number of true variants with Predicted set.
	Detected int

	// DetectedByOverlap is the number of true variants with
	// PredictedByOverlap set; always <= Detected.
	DetectedByOverlap int

	// WrongState is the number of true variants that overlapped at least one
	// prediction but were left undetected because the matched copy-number
	// state disagreed.
	WrongState int

	// Missed is the number of true variants with no overlapping prediction
	// at all.
	Missed int

	// NormalRows is the number of ground-truth rows with CN == 2.
	NormalRows int

	// FalsePositives is the number of normal rows with a prediction strictly
	// inside them.
	FalsePositives int
}

// Summarize folds results into a Summary.  TrueVariants always equals
// Detected + WrongState + Missed.
func Summarize(results []Result) Summary {
	var s Summary
	for i := range results {
		r := &results[i]
		if !r.Present {
			s.NormalRows++
			if r.Predicted {
				s.FalsePositives++
			}
			continue
		}
		s.TrueVariants++
		switch {
		case r.Predicted:
			s.Detected++
			if r.PredictedByOverlap {
				s.DetectedByOverlap++
			}
		case r.NumCNVs > 0:
			s.WrongState++
		default:
			s.Missed++
		}
	}
	return s
}

// SummarizeBySample folds results into one Summary per sample ID, plus the
// sorted sample order for deterministic reporting.
func SummarizeBySample(results []Result) (map[string]Summary, []string) {
	grouped := make(map[string][]Result)
	for _, r := range results {
		grouped[r.SampleID] = append(grouped[r.SampleID], r)
	}
	summaries := make(map[string]Summary, len(grouped))
	samples := make([]string, 0, len(grouped))
	for sample, rows := range grouped {
		summaries[sample] = Summarize(rows)
		samples = append(samples, sample)
	}
	sort.Strings(samples)
	return summaries, samples
}

// Sensitivity returns the fraction of true variants detected, or 0 when
// there were none.
func (s *Summary) Sensitivity() float64 {
	if s.TrueVariants == 0 {
		return 0
	}
	return float64(s.Detected) / float64(s.TrueVariants)
}

// FalsePositiveRate returns the fraction of normal rows falsely predicted as
// variants, or 0 when there were none.
func (s *Summary) FalsePositiveRate() float64 {
	if s.NormalRows == 0 {
		return 0
	}
	return float64(s.FalsePositives) / float64(s.NormalRows)
}

// SummaryHeader is the column header matching Summary.String().
const SummaryHeader = "TRUE_VARIANTS\tDETECTED\tDETECTED_BY_OVERLAP\tWRONG_STATE\tMISSED\tNORMAL_ROWS\tFALSE_POSITIVES\tSENSITIVITY\tFP_RATE"

// String returns a tab-separated rendering of the summary, suitable for a
// metrics file line under SummaryHeader.
func (s *Summary) String() string {
	return fmt.Sprintf("%d\t%d\t%d\t%d\t%d\t%d\t%d\t%0.6f\t%0.6f",
		s.TrueVariants, s.Detected, s.DetectedByOverlap, s.WrongState, s.Missed,
		s.NormalRows, s.FalsePositives, s.Sensitivity(), s.FalsePositiveRate())
}
