package pipeline

import "time"

// isValidDate reports whether (y, m, d) is a real calendar date within
// the accepted range (spec.md §6 Date validity): 1776 <= y <= 2100,
// 1 <= m <= 12, 1 <= d <= 31, and the triple must round-trip through the
// calendar (rejects e.g. 2023-02-30).
func isValidDate(y, m, d int) bool {
	if y < 1776 || y > 2100 {
		return false
	}
	if m < 1 || m > 12 {
		return false
	}
	if d < 1 || d > 31 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// isDateAbs reports whether a DateVal has all three components present,
// making it a DATEABS rather than a DATEREL (spec.md §4.7).
func isDateAbs(v DateVal) bool {
	return v.Y != 0 && v.M != 0 && v.D != 0
}
