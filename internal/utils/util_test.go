package utils

import "testing"

func TestByteOffset(t *testing.T) {
	tests := []struct {
		idx    int
		want   int
		wantOK bool
	}{
		{-1, 0, true},
		{0, 0, true},
		{1, 1, true},
		{2, 3, true},
		{4, 5, true},
		{5, 5, false},
	}
	for _, tt := range tests {
		got, ok := ByteOffset("aé b", tt.idx)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ByteOffset(%d) = %d, %v, want %d, %v", tt.idx, got, ok, tt.want, tt.wantOK)
		}
	}
}
