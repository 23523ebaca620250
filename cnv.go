// Package cnv defines the data model shared by the CNV-evaluation packages:
// copy-number calls, sample/chromosome-keyed call sets, and genomic region
// restrictions.
package cnv

import (
	"fmt"
	"math"
)

// PosType is the integer type used to represent genomic positions.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// NormalCN is the copy-number state of an ordinary diploid region.
const NormalCN = 2

// Call is a single CNV call: one contiguous region of one sample's genome
// together with its integer copy-number state.  Coordinates are 1-based and
// inclusive on both ends, following the SNP-array table convention (not BED's
// 0-based half-open convention).
type Call struct {
	// SampleID identifies the sample the call was made on.
	SampleID string
	// Chr is the chromosome name as spelled in the input table ("1", "chr1",
	// "X", ...).  No normalization is performed; ground-truth and predicted
	// tables must agree on the spelling.
	Chr string
	// Start and Stop are the first and last base of the region.
	Start PosType
	Stop  PosType
	// Length is the region length as reported by the caller.  It is carried
	// through rather than recomputed from Stop-Start+1, since some callers
	// report marker-to-marker span instead.
	Length PosType
	// NumSNPs is the number of array probes supporting the call.
	NumSNPs int
	// CN is the integer copy-number state; NormalCN means no variant.
	CN int
	// CNVID is the caller-assigned label for the region.  May be empty for
	// predicted calls.
	CNVID string
}

// IsVariant reports whether the call describes an actual copy-number change.
func (c *Call) IsVariant() bool {
	return c.CN != NormalCN
}

// Overlaps reports whether c and other share at least one base.  Calls on
// different samples or chromosomes never overlap.  Both endpoints are
// inclusive, so abutting regions ([1,10] and [10,20]) do overlap.
func (c *Call) Overlaps(other *Call) bool {
	if c.SampleID != other.SampleID || c.Chr != other.Chr {
		return false
	}
	return other.Start <= c.Stop && other.Stop >= c.Start
}

// OverlapSpan returns the length of the intersection of c and other,
// measured as stop - start to match the tables' Length convention, or 0 if
// the calls do not overlap.  Regions that merely abut have span 0.
func (c *Call) OverlapSpan(other *Call) PosType {
	if !c.Overlaps(other) {
		return 0
	}
	start := c.Start
	if other.Start > start {
		start = other.Start
	}
	stop := c.Stop
	if other.Stop < stop {
		stop = other.Stop
	}
	return stop - start
}

// StrictlyContains reports whether other lies strictly inside c: both of
// other's endpoints must fall in c's open interval (Start, Stop).
func (c *Call) StrictlyContains(other *Call) bool {
	if c.SampleID != other.SampleID || c.Chr != other.Chr {
		return false
	}
	return other.Start > c.Start && other.Stop < c.Stop
}

// String renders the call in sample:chr:start-stop(CN) form for log messages.
func (c *Call) String() string {
	return fmt.Sprintf("%s:%s:%d-%d(CN%d)", c.SampleID, c.Chr, c.Start, c.Stop, c.CN)
}
