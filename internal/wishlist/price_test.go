package wishlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	testCases := []struct {
		raw      string
		expected float64
	}{
		{raw: "19,99", expected: 19.99},
		{raw: "$19.99", expected: 19.99},
		{raw: "$25", expected: 25.0},
		{raw: "", expected: 0.0},
		{raw: "abc", expected: 0.0},
		{raw: "was £25 now £19.99", expected: 25.0},
		{raw: "£19.99 was £25", expected: 19.99},
		{raw: "US$ 1,234.56", expected: 1.234},
		{raw: "12.", expected: 12.0},
		{raw: ".5", expected: 5.0},
		{raw: "  7 €", expected: 7.0},
		{raw: "10.000원", expected: 10.0},
		{raw: "１９.９９円", expected: 19.99},
		{raw: "٢٥ ر.س", expected: 25.0},
		{raw: "₹ ४९९", expected: 499.0},
		{raw: "𝟏𝟐,𝟓", expected: 12.5},
		{raw: "１９．９９", expected: 19.0},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizePrice(tc.raw))
		})
	}
}

func TestNormalizePriceHugeNumber(t *testing.T) {
	raw := "1"
	for i := 0; i < 400; i++ {
		raw += "0"
	}

	assert.NotPanics(t, func() { NormalizePrice(raw) })
	assert.True(t, math.IsInf(NormalizePrice(raw), 1))
}
