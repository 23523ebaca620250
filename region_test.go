package cnv

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
)

func TestParseRegionString(t *testing.T) {
	r, err := ParseRegionString("chr7")
	expect.NoError(t, err)
	expect.EQ(t, r, Region{Chr: "chr7", Start: 1, Stop: PosTypeMax - 1})

	r, err = ParseRegionString("7:12345")
	expect.NoError(t, err)
	expect.EQ(t, r, Region{Chr: "7", Start: 12345, Stop: 12345})

	r, err = ParseRegionString("X:1000-2000")
	expect.NoError(t, err)
	expect.EQ(t, r, Region{Chr: "X", Start: 1000, Stop: 2000})

	for _, bad := range []string{"", ":100", "1:0", "1:-5", "1:2000-1000", "1:abc", "1:10-def"} {
		_, err = ParseRegionString(bad)
		expect.True(t, err != nil, "region %q should not parse", bad)
	}
}

func TestRegionFilterCalls(t *testing.T) {
	calls := []Call{
		{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000, CNVID: "a"},
		{SampleID: "s1", Chr: "2", Start: 1000, Stop: 2000, CNVID: "b"},
		{SampleID: "s2", Chr: "1", Start: 5000, Stop: 6000, CNVID: "c"},
		{SampleID: "s1", Chr: "1", Start: 1900, Stop: 2100, CNVID: "d"},
	}
	reg := Region{Chr: "1", Start: 1, Stop: PosTypeMax - 1}
	kept := reg.FilterCalls(calls)
	expect.That(t, callLabels(kept), h.ElementsAre("a", "c", "d"))

	reg = Region{Chr: "1", Start: 1950, Stop: 4000}
	kept = reg.FilterCalls(calls)
	// Order preserved, partial overlap kept.
	expect.That(t, callLabels(kept), h.ElementsAre("a", "d"))

	reg = Region{Chr: "3", Start: 1, Stop: PosTypeMax - 1}
	expect.EQ(t, len(reg.FilterCalls(calls)), 0)
}

func callLabels(calls []Call) []string {
	var ids []string
	for _, c := range calls {
		ids = append(ids, c.CNVID)
	}
	return ids
}
