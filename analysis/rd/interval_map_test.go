package rd

import (
	"reflect"
	"sort"
	"testing"

	"github.com/mchalupa/libdg/analysis/offset"
)

func TestIntervalMapCollectOrderAndCoverage(t *testing.T) {
	m := &IntervalMap[string]{}
	m.Add(offset.New(0, 4), "n1")
	m.Add(offset.New(4, 4), "n2")

	values, _, covered := m.Collect(offset.New(0, 8), nil)
	if !covered {
		t.Fatal("expected [0,8) to be fully covered by n1+n2")
	}
	// Reverse-scan order: n2 was inserted last, so it's seen first.
	if want := []string{"n2", "n1"}; !reflect.DeepEqual(values, want) {
		t.Fatalf("Collect values = %v, want %v", values, want)
	}
}

func TestIntervalMapCollectPartialCoverage(t *testing.T) {
	m := &IntervalMap[string]{}
	m.Add(offset.New(0, 4), "n1")

	values, _, covered := m.Collect(offset.New(0, 8), nil)
	if covered {
		t.Fatal("did not expect [0,8) to be fully covered by just [0,4)")
	}
	if want := []string{"n1"}; !reflect.DeepEqual(values, want) {
		t.Fatalf("Collect values = %v, want %v", values, want)
	}
}

func TestIntervalMapCollectContinuesAfterCoverage(t *testing.T) {
	m := &IntervalMap[string]{}
	m.Add(offset.New(0, 8), "wide")
	m.Add(offset.New(2, 2), "narrow")

	values, _, covered := m.Collect(offset.New(0, 8), nil)
	if !covered {
		t.Fatal("expected coverage from the wide bucket alone")
	}
	sort.Strings(values)
	if want := []string{"narrow", "wide"}; !reflect.DeepEqual(values, want) {
		t.Fatalf("Collect should keep scanning and return both overlapping buckets, got %v", values)
	}
}

func TestIntervalMapCollectAll(t *testing.T) {
	m := &IntervalMap[string]{}
	m.Add(offset.New(0, 4), "n1")
	m.Add(offset.New(8, 4), "n2")

	values := m.CollectAll(offset.New(0, 4))
	if want := []string{"n1"}; !reflect.DeepEqual(values, want) {
		t.Fatalf("CollectAll = %v, want %v", values, want)
	}
}

func TestKillOverlappingNonStrictDropsResidues(t *testing.T) {
	m := &IntervalMap[string]{}
	m.Add(offset.New(0, 8), "n1")

	m.KillOverlapping(offset.New(0, 4), false)

	values := m.CollectAll(offset.New(4, 4))
	if len(values) != 0 {
		t.Fatalf("non-strict kill should drop the [4,8) residue of n1, got %v", values)
	}
}

func TestKillOverlappingStrictDrainsResidues(t *testing.T) {
	m := &IntervalMap[string]{}
	m.Add(offset.New(0, 8), "n1")

	m.KillOverlapping(offset.New(2, 2), true)

	left := m.CollectAll(offset.New(0, 2))
	right := m.CollectAll(offset.New(4, 4))
	if len(left) != 1 || left[0] != "n1" {
		t.Fatalf("strict kill should keep the left residue [0,2), got %v", left)
	}
	if len(right) != 1 || right[0] != "n1" {
		t.Fatalf("strict kill should keep the right residue [4,8), got %v", right)
	}
	mid := m.CollectAll(offset.New(2, 2))
	if len(mid) != 0 {
		t.Fatalf("the killed range [2,4) itself should not map to n1 anymore, got %v", mid)
	}
}

func TestKillOverlappingFullSubsetRemovesBucketEntirely(t *testing.T) {
	m := &IntervalMap[string]{}
	m.Add(offset.New(0, 4), "n1")

	m.KillOverlapping(offset.New(0, 8), true)

	if got := m.CollectAll(offset.New(0, 4)); len(got) != 0 {
		t.Fatalf("bucket fully covered by ki should be removed, got %v", got)
	}
}
