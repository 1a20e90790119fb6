package wishlist

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	decimalPattern = regexp.MustCompile(`\p{Nd}+(\.\p{Nd}+)?`)
	digitsPattern  = regexp.MustCompile(`\p{Nd}+`)
)

// NormalizePrice converts a loosely formatted price string into a number.
//
// Commas are treated as decimal separators and the first numeric token wins,
// so "was £25 now £19.99" yields 25. Digits of any script count, so "１９.９９"
// yields 19.99. Input without digits yields 0.
func NormalizePrice(raw string) float64 {
	if raw == "" {
		return 0
	}
	s := strings.ReplaceAll(raw, ",", ".")

	token := decimalPattern.FindString(s)
	if token == "" {
		token = digitsPattern.FindString(s)
	}
	if token == "" {
		return 0
	}

	value, err := strconv.ParseFloat(strings.Map(asciiDigit, token), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	// ErrRange still yields ±Inf, which compares consistently across runs
	return value
}

// asciiDigit folds a decimal digit of any script to its ASCII form.
// Decimal digits are encoded as runs of ten starting at zero, so the
// value is the offset within the run modulo ten.
func asciiDigit(r rune) rune {
	if r < 0x80 || !unicode.IsDigit(r) {
		return r
	}
	for _, rng := range unicode.Nd.R16 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
			return '0' + (r-lo)/rune(rng.Stride)%10
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if lo, hi := rune(rng.Lo), rune(rng.Hi); r >= lo && r <= hi {
			return '0' + (r-lo)/rune(rng.Stride)%10
		}
	}
	return r
}
