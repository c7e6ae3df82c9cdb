package pipeline

import "regexp"

// romanNumeralRe matches a canonical (well-formed) Roman numeral.
var romanNumeralRe = regexp.MustCompile(`^M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// isRomanNumeral reports whether s is a canonical Roman numeral for
// 1..4999 (up to four leading M's). The empty string does not match (the regexp would otherwise
// accept it).
func isRomanNumeral(s string) bool {
	return s != "" && romanNumeralRe.MatchString(s)
}

type romanDigit struct {
	value   int
	numeral string
}

// romanTable is ordered from largest to smallest value, as required by
// the greedy-subtraction algorithm.
var romanTable = []romanDigit{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// romanToInt converts an already-validated Roman numeral to its integer
// value via greedy subtraction.
func romanToInt(s string) int {
	result := 0
	i := 0
	for _, d := range romanTable {
		for i+len(d.numeral) <= len(s) && s[i:i+len(d.numeral)] == d.numeral {
			result += d.value
			i += len(d.numeral)
		}
	}
	return result
}

// intToRoman converts an integer 1..3999 to its canonical Roman numeral
// string.
func intToRoman(n int) string {
	if n <= 0 || n > 3999 {
		return ""
	}
	var b []byte
	for _, d := range romanTable {
		for n >= d.value {
			b = append(b, d.numeral...)
			n -= d.value
		}
	}
	return string(b)
}
