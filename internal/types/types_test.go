package types

import "testing"

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 5}, Position{1, 0}, -1},
		{Position{2, 0}, Position{1, 9}, 1},
		{Position{3, 4}, Position{3, 2}, 1},
		{Position{3, 1}, Position{3, 2}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRangeOverlaps(t *testing.T) {
	a := Range{From: Position{0, 0}, To: Position{0, 3}}
	b := Range{From: Position{0, 3}, To: Position{0, 5}}
	c := Range{From: Position{0, 2}, To: Position{1, 0}}

	if a.Overlaps(b) {
		t.Error("touching ranges should not overlap")
	}
	if !a.Overlaps(c) || !c.Overlaps(a) {
		t.Error("expected a and c to overlap")
	}
}

func TestDirectionString(t *testing.T) {
	if Down.String() != "Down" {
		t.Errorf("Down.String() = %q", Down.String())
	}
	if Direction(42).String() != "Unknown" {
		t.Errorf("out of range direction should be Unknown")
	}
}
