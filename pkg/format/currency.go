// Package format renders money for display.
package format

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/iwvelando/take-home/pkg/mathutil"
)

// Currency returns a currency string with a pound sign and thousands separators (e.g., "-£1,234.56").
func Currency(amount float64) string {
	rounded := mathutil.Round(amount)
	formatted := NumericCurrency(math.Abs(rounded))
	if rounded < 0 {
		return "-£" + formatted
	}
	return "£" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	rounded := mathutil.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return sign + humanize.FormatFloat("#,###.##", math.Abs(rounded))
}
