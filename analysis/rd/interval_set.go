package rd

import "github.com/mchalupa/libdg/analysis/offset"

// DisjointIntervalSet is a canonicalised cover: a multiset of intervals
// with the invariant that no two elements overlap or touch. It is used
// during IntervalMap.Collect to know when a query range has already been
// fully explained by the buckets visited so far.
type DisjointIntervalSet struct {
	intervals []offset.Interval
}

// NewDisjointIntervalSet returns a DisjointIntervalSet seeded with the
// given intervals, inserted one at a time.
func NewDisjointIntervalSet(seed []offset.Interval) *DisjointIntervalSet {
	d := &DisjointIntervalSet{}
	for _, iv := range seed {
		d.Insert(iv)
	}
	return d
}

// Insert merges interval into the set: every existing member that
// overlaps or touches it is absorbed (removed and united into interval),
// and the resulting, possibly-grown interval is stored.
func (d *DisjointIntervalSet) Insert(interval offset.Interval) {
	kept := d.intervals[:0]
	for _, existing := range d.intervals {
		if !interval.Unite(existing) {
			kept = append(kept, existing)
		}
	}
	d.intervals = append(kept, interval)
}

// Intervals returns the disjoint, non-touching intervals currently in the
// set, in unspecified order.
func (d *DisjointIntervalSet) Intervals() []offset.Interval {
	return d.intervals
}

// Covers reports whether interval is a subset of the union of d's
// members. An unknown interval is conservatively reported as covered,
// since claiming otherwise would be an over-approximation the caller
// cannot act on.
func (d *DisjointIntervalSet) Covers(interval offset.Interval) bool {
	if interval.IsUnknown() {
		return true
	}
	for _, existing := range d.intervals {
		if interval.Overlaps(existing) && interval.IsSubsetOf(existing) {
			return true
		}
	}
	return false
}
