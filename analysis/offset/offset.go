// Package offset implements the byte-offset and interval algebra that the
// reaching-definitions core builds on: a non-negative byte count with a
// distinguished Unknown value standing in for "somewhere, we don't know
// where", and both-closed intervals built out of pairs of offsets.
package offset

import "fmt"

// Offset is a non-negative byte count, or the distinguished value Unknown.
// The zero Offset is byte 0, not Unknown.
type Offset uint64

// Unknown is the sentinel offset standing in for a statically unresolvable
// byte position or length. Arithmetic involving it is absorbing: adding or
// subtracting anything from Unknown yields Unknown again.
const Unknown Offset = ^Offset(0)

// IsUnknown reports whether o is the Unknown sentinel.
func (o Offset) IsUnknown() bool {
	return o == Unknown
}

// Add returns o+p, or Unknown if either operand is Unknown.
func (o Offset) Add(p Offset) Offset {
	if o.IsUnknown() || p.IsUnknown() {
		return Unknown
	}
	return o + p
}

// Sub returns o-p, or Unknown if either operand is Unknown.
// Precondition: p <= o when both are known.
func (o Offset) Sub(p Offset) Offset {
	if o.IsUnknown() || p.IsUnknown() {
		return Unknown
	}
	return o - p
}

func (o Offset) String() string {
	if o.IsUnknown() {
		return "?"
	}
	return fmt.Sprintf("%d", uint64(o))
}

// intervalsOverlap reports whether the closed byte ranges
// [s1, s1+l1-1] and [s2, s2+l2-1] intersect.
func intervalsOverlap(s1, l1, s2, l2 uint64) bool {
	return s1 < s2+l2 && s2 < s1+l1
}

// Interval is a both-closed byte range [Start, Start+Length-1]. An
// interval is unknown if its start is unknown or its length is zero: a
// zero-length interval describes no bytes, so it can never overlap or be
// overlapped, and is treated the same way an unknown start is.
type Interval struct {
	Start  Offset
	Length Offset
}

// New returns the interval [start, start+length-1].
func New(start, length Offset) Interval {
	return Interval{Start: start, Length: length}
}

// IsUnknown reports whether i covers no statically known set of bytes.
func (i Interval) IsUnknown() bool {
	return i.Start.IsUnknown() || i.Length == 0
}

// End returns the exclusive end of the interval, Start+Length, or Unknown
// if either field is unknown.
func (i Interval) End() Offset {
	return i.Start.Add(i.Length)
}

// Overlaps reports whether i and other share at least one byte. Unknown
// intervals never overlap anything, including themselves: there is no
// byte that is statically known to be shared.
func (i Interval) Overlaps(other Interval) bool {
	if i.IsUnknown() || other.IsUnknown() {
		return false
	}
	return intervalsOverlap(uint64(i.Start), uint64(i.Length), uint64(other.Start), uint64(other.Length))
}

// IsSubsetOf reports whether i lies entirely within other.
func (i Interval) IsSubsetOf(other Interval) bool {
	return i.Start >= other.Start && i.Start.Add(i.Length) <= other.Start.Add(other.Length)
}

// Unite tries to merge other into i: if the two intervals overlap or are
// exactly adjacent (one starts where the other ends), i is replaced by
// the minimal interval enclosing both and Unite returns true. Otherwise i
// is left untouched and Unite returns false.
func (i *Interval) Unite(other Interval) bool {
	if i.IsUnknown() || other.IsUnknown() {
		return false
	}
	if !i.Overlaps(other) && i.End() != other.Start && other.End() != i.Start {
		return false
	}
	start := minOffset(i.Start, other.Start)
	end := maxOffset(i.End(), other.End())
	i.Start = start
	i.Length = end.Sub(start)
	return true
}

func minOffset(a, b Offset) Offset {
	if a < b {
		return a
	}
	return b
}

func maxOffset(a, b Offset) Offset {
	if a > b {
		return a
	}
	return b
}

func (i Interval) String() string {
	if i.IsUnknown() {
		return "[?,?)"
	}
	return fmt.Sprintf("[%s,%s)", i.Start, i.End())
}
