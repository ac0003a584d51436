package order

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Presentation-time rounding. Never applied to stored values and never an
// input to sorting.

// RoundQuantity rounds to three decimals to support weight-based units.
func RoundQuantity(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// RoundCurrency rounds to two decimals for interactive display.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatQuantity renders a quantity with up to three decimals, trailing
// zeros trimmed.
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(RoundQuantity(v), 'f', -1, 64)
}

// FormatCurrency renders a two-decimal amount.
func FormatCurrency(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var listPricePrinter = message.NewPrinter(language.Spanish)

// FormatListPrice renders a whole-unit, locale-grouped amount for the bulk
// price list and catalog export.
func FormatListPrice(v float64) string {
	return listPricePrinter.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
}
