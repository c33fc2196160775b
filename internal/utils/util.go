package utils

// ByteOffset returns the byte offset of the rune at index runeIndex in s.
// The index one past the last rune maps to len(s); anything beyond that
// reports false.
func ByteOffset(s string, runeIndex int) (int, bool) {
	if runeIndex <= 0 {
		return 0, true
	}
	n := 0
	for i := range s {
		if n == runeIndex {
			return i, true
		}
		n++
	}
	return len(s), n == runeIndex
}
