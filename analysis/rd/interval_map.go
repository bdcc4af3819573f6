package rd

import "github.com/mchalupa/libdg/analysis/offset"

// bucket is one (interval, value) pair stored in an IntervalMap. Buckets
// are not canonicalised: the same byte can be covered by several
// buckets, and a newer bucket does not automatically remove an older,
// overlapping one (that is KillOverlapping's job, and StrictIntervalKill
// controls how thoroughly it does it).
type bucket[V any] struct {
	interval offset.Interval
	value    V
}

// IntervalMap is an ordered sequence of (Interval, V) buckets. Lookups
// scan in reverse order, so that newer writes shadow older ones wherever
// they overlap.
type IntervalMap[V any] struct {
	buckets []bucket[V]
}

// Add appends a new bucket unconditionally; it never removes or splits
// any existing bucket.
func (m *IntervalMap[V]) Add(interval offset.Interval, value V) {
	m.buckets = append(m.buckets, bucket[V]{interval, value})
}

// KillOverlapping removes every bucket whose interval overlaps ki.
//
// When a removed bucket's interval is only partially covered by ki (it
// is not a subset of ki) and strict is false, the non-overlapping left
// and right residues of that bucket are simply dropped: this is the
// buggy-but-conservative behaviour that the original implementation
// shipped with, where a strong update that straddles part of an older,
// wider definition makes that definition unreachable on the parts ki
// didn't actually touch. Pass strict=true to drain the residues back
// into the map instead, which only ever tightens the result.
func (m *IntervalMap[V]) KillOverlapping(ki offset.Interval, strict bool) {
	var residues []bucket[V]
	kept := m.buckets[:0]
	for _, b := range m.buckets {
		if !b.interval.Overlaps(ki) {
			kept = append(kept, b)
			continue
		}
		if strict {
			bStart, bEnd := b.interval.Start, b.interval.End()
			kStart, kEnd := ki.Start, ki.End()
			if bStart < kStart {
				left := offset.New(bStart, minOffset(kStart, bEnd).Sub(bStart))
				if left.Length != 0 {
					residues = append(residues, bucket[V]{left, b.value})
				}
			}
			if bEnd > kEnd {
				start := maxOffset(kEnd, bStart)
				right := offset.New(start, bEnd.Sub(start))
				if right.Length != 0 {
					residues = append(residues, bucket[V]{right, b.value})
				}
			}
		}
		// Overlapping buckets are always dropped from kept; residues (if
		// any, and if strict) are reinstated below.
	}
	m.buckets = append(kept, residues...)
}

func minOffset(a, b offset.Offset) offset.Offset {
	if a < b {
		return a
	}
	return b
}

func maxOffset(a, b offset.Offset) offset.Offset {
	if a > b {
		return a
	}
	return b
}

// isCovered reports whether interval is a subset of the union of the
// intervals accumulated so far.
func isCovered(interval offset.Interval, covered *DisjointIntervalSet) bool {
	return covered.Covers(interval)
}

// Collect scans the buckets in reverse insertion order, accumulating
// every bucket that overlaps interval and is not already subsumed by the
// disjoint cover built from covered plus the buckets visited so far. It
// returns the matched values (in reverse-scan order), the final cover,
// and whether interval ended up fully covered.
//
// The scan does not stop early once covered becomes true: every
// overlapping bucket is still collected, so that callers needing the
// full set of possible definitions (not just enough to prove coverage)
// get it. Callers that only care about the coverage flag may stop
// consuming the result as soon as they see it turn true.
func (m *IntervalMap[V]) Collect(interval offset.Interval, covered []offset.Interval) ([]V, []offset.Interval, bool) {
	var result []V
	cover := NewDisjointIntervalSet(covered)
	fullyCovered := false

	for i := len(m.buckets) - 1; i >= 0; i-- {
		b := m.buckets[i]
		if interval.IsUnknown() || b.interval.IsUnknown() || (b.interval.Overlaps(interval) && !isCovered(b.interval, cover)) {
			cover.Insert(b.interval)
			result = append(result, b.value)
			fullyCovered = isCovered(interval, cover)
		}
	}

	return result, cover.Intervals(), fullyCovered
}

// CollectAll returns every value whose bucket interval overlaps interval,
// in reverse insertion order, without regard for coverage.
func (m *IntervalMap[V]) CollectAll(interval offset.Interval) []V {
	var result []V
	for i := len(m.buckets) - 1; i >= 0; i-- {
		b := m.buckets[i]
		if interval.IsUnknown() || b.interval.IsUnknown() || b.interval.Overlaps(interval) {
			result = append(result, b.value)
		}
	}
	return result
}

// Buckets returns the raw (interval, value) pairs, in insertion order.
// Used by callers that need to copy or iterate the whole map, such as
// DefinitionsMap's exhaustive-walk helpers.
func (m *IntervalMap[V]) Buckets() []struct {
	Interval offset.Interval
	Value    V
} {
	out := make([]struct {
		Interval offset.Interval
		Value    V
	}, len(m.buckets))
	for i, b := range m.buckets {
		out[i].Interval = b.interval
		out[i].Value = b.value
	}
	return out
}

// Len reports the number of buckets currently stored.
func (m *IntervalMap[V]) Len() int {
	return len(m.buckets)
}
