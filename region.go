package cnv

import (
	"fmt"
	"strconv"
	"strings"
)

// Region restricts evaluation to part of the genome.  Coordinates are
// 1-based and inclusive, matching Call.
type Region struct {
	Chr   string
	Start PosType
	Stop  PosType
}

// ParseRegionString parses a region string of one of the forms
//   [chromosome]:[1-based first pos]-[last pos]
//   [chromosome]:[1-based pos]
//   [chromosome]
// The interval [1, PosTypeMax - 1] is returned if there is no positional
// restriction.
func ParseRegionString(region string) (result Region, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("cnv.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		result.Chr = region
		result.Start = 1
		result.Stop = PosTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("cnv.ParseRegionString: empty chromosome name")
		return
	}
	result.Chr = region[0:colonPos]
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos int64
		if pos, err = strconv.ParseInt(rangeStr, 10, 32); err != nil {
			return
		}
		if pos <= 0 {
			err = fmt.Errorf("cnv.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start = PosType(pos)
		result.Stop = PosType(pos)
		return
	}
	startStr := rangeStr[:dashPos]
	stopStr := rangeStr[dashPos+1:]
	var start int
	if start, err = strconv.Atoi(startStr); err != nil {
		return
	}
	if start <= 0 {
		err = fmt.Errorf("cnv.ParseRegionString: position %v in region string out of range", startStr)
		return
	}
	var stop int
	if stop, err = strconv.Atoi(stopStr); err != nil {
		return
	}
	if stop < start || stop >= PosTypeMax {
		err = fmt.Errorf("cnv.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start = PosType(start)
	result.Stop = PosType(stop)
	return
}

// Intersects reports whether the region shares at least one base with
// [start, stop] on the given chromosome.
func (r *Region) Intersects(chr string, start, stop PosType) bool {
	return chr == r.Chr && start <= r.Stop && stop >= r.Start
}

// FilterCalls returns the calls intersecting the region, preserving input
// order.
func (r *Region) FilterCalls(calls []Call) []Call {
	var kept []Call
	for _, c := range calls {
		if r.Intersects(c.Chr, c.Start, c.Stop) {
			kept = append(kept, c)
		}
	}
	return kept
}
