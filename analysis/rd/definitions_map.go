package rd

import "github.com/mchalupa/libdg/analysis/offset"

// DefSite identifies a range of bytes of a memory target: the triple
// (target, offset, length) that a read or write names.
type DefSite[T comparable] struct {
	Target T
	offset.Interval
}

// NewDefSite builds a DefSite from its three parts.
func NewDefSite[T comparable](target T, start, length offset.Offset) DefSite[T] {
	return DefSite[T]{Target: target, Interval: offset.New(start, length)}
}

// DefinitionsMap maps a memory target to the interval map recording
// which node(s) last wrote which byte ranges of it. T is the (comparable)
// identity of a memory target, such as a pointer-analysis allocation
// site; N is the node type stored as a definition.
type DefinitionsMap[T comparable, N comparable] struct {
	byTarget map[T]*IntervalMap[N]
}

// NewDefinitionsMap returns an empty DefinitionsMap.
func NewDefinitionsMap[T comparable, N comparable]() *DefinitionsMap[T, N] {
	return &DefinitionsMap[T, N]{byTarget: make(map[T]*IntervalMap[N])}
}

func (d *DefinitionsMap[T, N]) mapFor(t T) *IntervalMap[N] {
	m, ok := d.byTarget[t]
	if !ok {
		m = &IntervalMap[N]{}
		d.byTarget[t] = m
	}
	return m
}

// DefinesTarget reports whether any bucket exists for t.
func (d *DefinitionsMap[T, N]) DefinesTarget(t T) bool {
	m, ok := d.byTarget[t]
	return ok && m.Len() > 0
}

// Targets returns every target with at least one recorded bucket, in
// unspecified order.
func (d *DefinitionsMap[T, N]) Targets() []T {
	out := make([]T, 0, len(d.byTarget))
	for t := range d.byTarget {
		out = append(out, t)
	}
	return out
}

// TargetMap returns the interval map recorded for t, or nil if t has no
// buckets at all.
func (d *DefinitionsMap[T, N]) TargetMap(t T) *IntervalMap[N] {
	return d.byTarget[t]
}

// Clone returns an independent copy of d: mutating the clone through
// Add/Update/AddBuckets never affects d, and vice versa. Used by the
// exhaustive walker at a block with more than one predecessor, where
// each branch needs its own view of what has already been explained
// without disturbing its siblings.
func (d *DefinitionsMap[T, N]) Clone() *DefinitionsMap[T, N] {
	out := NewDefinitionsMap[T, N]()
	for t, m := range d.byTarget {
		out.AddBuckets(t, m)
	}
	return out
}

// Get returns the set of nodes that definitely define some byte of ds.
// Every surviving bucket overlapping ds counts, so a weak update (Add,
// AddAll) never hides an earlier definition of the same bytes; only a
// strong update (Update) removes one.
func (d *DefinitionsMap[T, N]) Get(ds DefSite[T]) Set[N] {
	m, ok := d.byTarget[ds.Target]
	if !ok {
		return NewSet[N]()
	}
	return NewSet[N](m.CollectAll(ds.Interval)...)
}

// Update performs a strong update: it kills every bucket slice
// overlapping ds.Interval within ds.Target's map, then records n as the
// definition of exactly ds.Interval. strict controls whether the killed
// buckets' residues outside ds.Interval are preserved (see
// IntervalMap.KillOverlapping).
func (d *DefinitionsMap[T, N]) Update(ds DefSite[T], n N, strict bool) {
	m := d.mapFor(ds.Target)
	m.KillOverlapping(ds.Interval, strict)
	m.Add(ds.Interval, n)
}

// Add performs a weak update: it records n as an additional (not
// exclusive) definition of ds.Interval, without disturbing any existing
// bucket.
func (d *DefinitionsMap[T, N]) Add(ds DefSite[T], n N) {
	d.mapFor(ds.Target).Add(ds.Interval, n)
}

// AddBuckets copies every (interval, value) pair of src under target t,
// without disturbing whatever t already maps to. Used when merging one
// block's definitions into another's during an exhaustive walk.
func (d *DefinitionsMap[T, N]) AddBuckets(t T, src *IntervalMap[N]) {
	m := d.mapFor(t)
	for _, b := range src.Buckets() {
		m.Add(b.Interval, b.Value)
	}
}

// AddAll adds n as an additional definition of every bucket of every
// target currently tracked by d, modelling a write through an unknown
// pointer: since we don't know what the write touched, it might have
// touched anything we've already seen a definition for.
func (d *DefinitionsMap[T, N]) AddAll(n N) {
	for _, m := range d.byTarget {
		for _, b := range m.Buckets() {
			m.Add(b.Interval, n)
		}
	}
}

// AllValues returns every value recorded under any target of d, regardless
// of which interval or target it was filed under. Used by the exhaustive
// reaching-definitions walker, which answers a read of unknown target by
// assuming it might have observed any write at all.
func (d *DefinitionsMap[T, N]) AllValues() Set[N] {
	out := NewSet[N]()
	for _, m := range d.byTarget {
		for _, b := range m.Buckets() {
			out.Add(b.Value)
		}
	}
	return out
}

// UndefinedIntervals returns the sub-intervals of ds.Interval not covered
// by any bucket under ds.Target, in ascending start order. An unknown
// offset collapses the whole query range into a single hole, since there
// is no way to know which bytes, if any, are actually covered.
func (d *DefinitionsMap[T, N]) UndefinedIntervals(ds DefSite[T]) []offset.Interval {
	if ds.Interval.Start.IsUnknown() {
		return []offset.Interval{ds.Interval}
	}
	m, ok := d.byTarget[ds.Target]
	if !ok {
		return []offset.Interval{ds.Interval}
	}

	start := ds.Interval.Start
	end := ds.Interval.End()

	// Clip every overlapping bucket to the query range and fold it into
	// a disjoint cover, then report the cover's complement within
	// [start, end) as the set of holes.
	covered := &DisjointIntervalSet{}
	for _, b := range m.Buckets() {
		if b.Interval.IsUnknown() || !b.Interval.Overlaps(ds.Interval) {
			continue
		}
		clipStart := maxOffset(start, b.Interval.Start)
		clipEnd := minOffset(end, b.Interval.End())
		if clipEnd > clipStart {
			covered.Insert(offset.New(clipStart, clipEnd.Sub(clipStart)))
		}
	}

	ivs := covered.Intervals()
	sortByStart(ivs)

	var holes []offset.Interval
	cursor := start
	for _, iv := range ivs {
		if iv.Start > cursor {
			holes = append(holes, offset.New(cursor, iv.Start.Sub(cursor)))
		}
		if iv.End() > cursor {
			cursor = iv.End()
		}
	}
	if cursor < end {
		holes = append(holes, offset.New(cursor, end.Sub(cursor)))
	}
	return holes
}

func sortByStart(ivs []offset.Interval) {
	for i := 1; i < len(ivs); i++ {
		for j := i; j > 0 && ivs[j].Start < ivs[j-1].Start; j-- {
			ivs[j], ivs[j-1] = ivs[j-1], ivs[j]
		}
	}
}
