// Package format renders guideline amounts and ratios for display.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency returns a whole-dollar amount with a dollar sign and thousands
// separators (e.g., "-$1,234").
func Currency(amount int) string {
	if amount < 0 {
		return printer.Sprintf("-$%d", -amount)
	}
	return printer.Sprintf("$%d", amount)
}

// Percentage returns a ratio percentage with the given number of decimal
// places (e.g., "150.25%").
func Percentage(value float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df%%%%", precision), value)
}
