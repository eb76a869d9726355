package presenter

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const notAvailable = "n/a"

// fixed2 renders v with exactly two decimals, rounding the exact binary
// value half to even.
func fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return decimal.NewFromFloatWithExponent(v, -64).StringFixedBank(2)
}

// FormatPrice renders a USD amount such as "$150.00" or "$-1.50".
func FormatPrice(v float64) string {
	s := fixed2(v)
	if s == notAvailable {
		return s
	}
	return "$" + s
}

// FormatPercent renders a percentage such as "1.01%".
func FormatPercent(v float64) string {
	s := fixed2(v)
	if s == notAvailable {
		return s
	}
	return s + "%"
}

// FormatVolume renders an integer with thousands separators.
func FormatVolume(v uint64) string {
	if v > math.MaxInt64 {
		return humanize.Comma(math.MaxInt64)
	}
	return humanize.Comma(int64(v))
}
