package offset

import "testing"

func TestOffsetArithmeticPropagatesUnknown(t *testing.T) {
	if !Unknown.Add(5).IsUnknown() {
		t.Fatal("Unknown + 5 should be Unknown")
	}
	if !Offset(5).Add(Unknown).IsUnknown() {
		t.Fatal("5 + Unknown should be Unknown")
	}
	if got := Offset(3).Add(4); got != 7 {
		t.Fatalf("3 + 4 = %v, want 7", got)
	}
}

func TestIntervalIsUnknown(t *testing.T) {
	cases := []struct {
		iv   Interval
		want bool
	}{
		{New(0, 4), false},
		{New(Unknown, 4), true},
		{New(0, 0), true},
	}
	for _, c := range cases {
		if got := c.iv.IsUnknown(); got != c.want {
			t.Errorf("%v.IsUnknown() = %v, want %v", c.iv, got, c.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		a, b Interval
		want bool
	}{
		{New(0, 4), New(4, 4), false},   // touching but not overlapping
		{New(0, 4), New(3, 4), true},    // overlap on byte 3
		{New(0, 4), New(0, 8), true},    // nested
		{New(0, 4), New(Unknown, 4), false},
		{New(0, 0), New(0, 4), false}, // zero length is unknown
	}
	for _, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIsSubsetOf(t *testing.T) {
	if !New(2, 2).IsSubsetOf(New(0, 8)) {
		t.Fatal("[2,4) should be a subset of [0,8)")
	}
	if New(0, 8).IsSubsetOf(New(2, 2)) {
		t.Fatal("[0,8) should not be a subset of [2,4)")
	}
}

func TestUniteOverlapping(t *testing.T) {
	iv := New(0, 4)
	if !iv.Unite(New(2, 4)) {
		t.Fatal("overlapping intervals should unite")
	}
	if want := New(0, 6); iv != want {
		t.Fatalf("united interval = %v, want %v", iv, want)
	}
}

func TestUniteAdjacent(t *testing.T) {
	iv := New(0, 4)
	if !iv.Unite(New(4, 4)) {
		t.Fatal("adjacent intervals should unite")
	}
	if want := New(0, 8); iv != want {
		t.Fatalf("united interval = %v, want %v", iv, want)
	}
}

func TestUniteDisjointFails(t *testing.T) {
	iv := New(0, 4)
	if iv.Unite(New(10, 4)) {
		t.Fatal("disjoint, non-adjacent intervals should not unite")
	}
	if want := New(0, 4); iv != want {
		t.Fatalf("iv was mutated on failed unite: %v", iv)
	}
}

func TestUniteUnknownFails(t *testing.T) {
	iv := New(Unknown, 4)
	if iv.Unite(New(0, 4)) {
		t.Fatal("an unknown interval should never unite")
	}
}
