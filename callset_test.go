package cnv

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
)

func callIDs(calls []*Call) []string {
	var ids []string
	for _, c := range calls {
		ids = append(ids, c.CNVID)
	}
	return ids
}

func TestCallSetOverlapping(t *testing.T) {
	set := NewCallSet()
	set.Add(Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000, CNVID: "a"})
	set.Add(Call{SampleID: "s1", Chr: "1", Start: 5000, Stop: 6000, CNVID: "b"})
	set.Add(Call{SampleID: "s1", Chr: "2", Start: 1000, Stop: 2000, CNVID: "c"})
	set.Add(Call{SampleID: "s2", Chr: "1", Start: 1000, Stop: 2000, CNVID: "d"})

	expect.EQ(t, set.Len(), 4)
	expect.EQ(t, set.NumSamples(), 2)

	expect.That(t, callIDs(set.Overlapping("s1", "1", 1500, 1600)), h.ElementsAre("a"))
	expect.That(t, callIDs(set.Overlapping("s1", "1", 1500, 5500)), h.ElementsAre("a", "b"))
	expect.That(t, callIDs(set.Overlapping("s1", "2", 1, 10000)), h.ElementsAre("c"))
	expect.That(t, callIDs(set.Overlapping("s2", "1", 1, 10000)), h.ElementsAre("d"))
	expect.EQ(t, len(set.Overlapping("s1", "1", 3000, 4000)), 0)
	expect.EQ(t, len(set.Overlapping("s3", "1", 1, 10000)), 0)
	expect.EQ(t, len(set.Overlapping("s1", "X", 1, 10000)), 0)
}

func TestCallSetOverlappingBoundaries(t *testing.T) {
	set := NewCallSet()
	set.Add(Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000, CNVID: "a"})

	// Both endpoints are inclusive.
	expect.That(t, callIDs(set.Overlapping("s1", "1", 2000, 3000)), h.ElementsAre("a"))
	expect.That(t, callIDs(set.Overlapping("s1", "1", 500, 1000)), h.ElementsAre("a"))
	expect.EQ(t, len(set.Overlapping("s1", "1", 2001, 3000)), 0)
	expect.EQ(t, len(set.Overlapping("s1", "1", 500, 999)), 0)
}

func TestCallSetInsertionOrder(t *testing.T) {
	// Results come back in Add order even when coordinates are added out of
	// order, so the evaluator's first-on-ties rule sees input order.
	set := NewCallSet()
	set.Add(Call{SampleID: "s1", Chr: "1", Start: 3000, Stop: 4000, CNVID: "first"})
	set.Add(Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000, CNVID: "second"})
	set.Add(Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000, CNVID: "third"}) // duplicate interval
	set.Add(Call{SampleID: "s1", Chr: "1", Start: 2000, Stop: 3500, CNVID: "fourth"})

	expect.That(t, callIDs(set.Overlapping("s1", "1", 1, 10000)),
		h.ElementsAre("first", "second", "third", "fourth"))
	expect.That(t, callIDs(set.Overlapping("s1", "1", 1500, 1600)),
		h.ElementsAre("second", "third"))
}

func TestCallSetFreeze(t *testing.T) {
	set := NewCallSet()
	for i := 0; i < 100; i++ {
		set.Add(Call{SampleID: "s1", Chr: "1", Start: PosType(i * 10), Stop: PosType(i*10 + 5), CNVID: "x"})
	}
	set.Freeze()
	expect.EQ(t, len(set.Overlapping("s1", "1", 0, 1000)), 100)
	expect.EQ(t, len(set.Overlapping("s1", "1", 42, 42)), 1)
}
