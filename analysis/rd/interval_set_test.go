package rd

import (
	"testing"

	"github.com/mchalupa/libdg/analysis/offset"
)

func TestDisjointIntervalSetMergesOverlapping(t *testing.T) {
	d := &DisjointIntervalSet{}
	d.Insert(offset.New(0, 4))
	d.Insert(offset.New(2, 4))

	ivs := d.Intervals()
	if len(ivs) != 1 {
		t.Fatalf("expected a single merged interval, got %v", ivs)
	}
	if want := offset.New(0, 6); ivs[0] != want {
		t.Fatalf("merged interval = %v, want %v", ivs[0], want)
	}
}

func TestDisjointIntervalSetMergesAdjacent(t *testing.T) {
	d := &DisjointIntervalSet{}
	d.Insert(offset.New(0, 4))
	d.Insert(offset.New(4, 4))

	ivs := d.Intervals()
	if len(ivs) != 1 {
		t.Fatalf("expected adjacent intervals to merge, got %v", ivs)
	}
}

func TestDisjointIntervalSetKeepsDisjointApart(t *testing.T) {
	d := &DisjointIntervalSet{}
	d.Insert(offset.New(0, 4))
	d.Insert(offset.New(10, 4))

	ivs := d.Intervals()
	if len(ivs) != 2 {
		t.Fatalf("expected two disjoint intervals, got %v", ivs)
	}
}

func TestDisjointIntervalSetCovers(t *testing.T) {
	d := &DisjointIntervalSet{}
	d.Insert(offset.New(0, 8))

	if !d.Covers(offset.New(2, 4)) {
		t.Fatal("expected [2,6) to be covered by [0,8)")
	}
	if d.Covers(offset.New(6, 4)) {
		t.Fatal("[6,10) should not be covered by [0,8)")
	}
}

func TestDisjointIntervalSetInsertPreservesInvariant(t *testing.T) {
	d := &DisjointIntervalSet{}
	seeds := []offset.Interval{
		offset.New(0, 2), offset.New(2, 2), offset.New(10, 2),
		offset.New(4, 2), offset.New(12, 2), offset.New(8, 2),
	}
	for _, s := range seeds {
		d.Insert(s)
	}
	ivs := d.Intervals()
	for i := range ivs {
		for j := range ivs {
			if i == j {
				continue
			}
			if ivs[i].Overlaps(ivs[j]) {
				t.Fatalf("intervals %v and %v overlap", ivs[i], ivs[j])
			}
			if ivs[i].End() == ivs[j].Start || ivs[j].End() == ivs[i].Start {
				t.Fatalf("intervals %v and %v are adjacent but weren't merged", ivs[i], ivs[j])
			}
		}
	}
}
