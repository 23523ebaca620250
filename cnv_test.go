package cnv

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestCallOverlaps(t *testing.T) {
	g := Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000}
	tests := []struct {
		p    Call
		want bool
	}{
		{Call{SampleID: "s1", Chr: "1", Start: 1500, Stop: 2500}, true},
		{Call{SampleID: "s1", Chr: "1", Start: 2000, Stop: 2500}, true}, // abutting, inclusive ends
		{Call{SampleID: "s1", Chr: "1", Start: 2001, Stop: 2500}, false},
		{Call{SampleID: "s1", Chr: "1", Start: 500, Stop: 1000}, true},
		{Call{SampleID: "s1", Chr: "1", Start: 500, Stop: 999}, false},
		{Call{SampleID: "s1", Chr: "2", Start: 1500, Stop: 2500}, false},
		{Call{SampleID: "s2", Chr: "1", Start: 1500, Stop: 2500}, false},
		{Call{SampleID: "s1", Chr: "1", Start: 1, Stop: 3000}, true},
	}
	for _, tt := range tests {
		expect.EQ(t, g.Overlaps(&tt.p), tt.want, "p=%v", tt.p)
	}
}

func TestCallOverlapSpan(t *testing.T) {
	g := Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000}
	p := Call{SampleID: "s1", Chr: "1", Start: 1050, Stop: 1950}
	expect.EQ(t, g.OverlapSpan(&p), PosType(900))
	p = Call{SampleID: "s1", Chr: "1", Start: 1, Stop: 3000}
	expect.EQ(t, g.OverlapSpan(&p), PosType(1000))
	p = Call{SampleID: "s1", Chr: "1", Start: 2000, Stop: 3000}
	expect.EQ(t, g.OverlapSpan(&p), PosType(0))
	p = Call{SampleID: "s1", Chr: "2", Start: 1000, Stop: 2000}
	expect.EQ(t, g.OverlapSpan(&p), PosType(0))
}

func TestCallStrictlyContains(t *testing.T) {
	g := Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 2000}
	expect.True(t, g.StrictlyContains(&Call{SampleID: "s1", Chr: "1", Start: 1001, Stop: 1999}))
	expect.False(t, g.StrictlyContains(&Call{SampleID: "s1", Chr: "1", Start: 1000, Stop: 1999}))
	expect.False(t, g.StrictlyContains(&Call{SampleID: "s1", Chr: "1", Start: 1001, Stop: 2000}))
	expect.False(t, g.StrictlyContains(&Call{SampleID: "s1", Chr: "1", Start: 500, Stop: 2500}))
	expect.False(t, g.StrictlyContains(&Call{SampleID: "s2", Chr: "1", Start: 1001, Stop: 1999}))
}

func TestCallIsVariant(t *testing.T) {
	expect.False(t, (&Call{CN: 2}).IsVariant())
	expect.True(t, (&Call{CN: 0}).IsVariant())
	expect.True(t, (&Call{CN: 1}).IsVariant())
	expect.True(t, (&Call{CN: 3}).IsVariant())
}
