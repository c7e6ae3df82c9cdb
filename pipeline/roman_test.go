package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRomanNumeral(t *testing.T) {
	assert.True(t, isRomanNumeral("XIV"))
	assert.True(t, isRomanNumeral("MCMXCIX"))
	assert.False(t, isRomanNumeral(""))
	assert.False(t, isRomanNumeral("IIII"))
	assert.False(t, isRomanNumeral("mcmxcix"))
}

func TestRomanToInt(t *testing.T) {
	cases := map[string]int{
		"I": 1, "IV": 4, "IX": 9, "XIV": 14, "XL": 40,
		"XC": 90, "CD": 400, "CM": 900, "MCMXCIX": 1999, "MMXXIV": 2024,
	}
	for roman, want := range cases {
		assert.Equal(t, want, romanToInt(roman), roman)
	}
}

func TestIntToRomanRoundTrip(t *testing.T) {
	for n := 1; n < 3000; n += 37 {
		roman := intToRoman(n)
		assert.True(t, isRomanNumeral(roman), roman)
		assert.Equal(t, n, romanToInt(roman), roman)
	}
}

func TestIntToRomanOutOfRange(t *testing.T) {
	assert.Equal(t, "", intToRoman(0))
	assert.Equal(t, "", intToRoman(4000))
}
