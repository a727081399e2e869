package domain

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders numbers with US thousands grouping (1234567 → "1,234,567").
var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCount renders an integer with thousands separators for display.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatRate rounds a per-100k rate to the nearest whole number for display,
// with thousands separators. Missing values render as "n/a".
func FormatRate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return printer.Sprintf("%d", int64(math.Round(v)))
}
