// Package money holds the rounding and formatting rules for currency amounts.
// Amounts travel through the system as float64; arithmetic that must not drift
// goes through shopspring/decimal.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Places is the number of decimal places amounts are rounded to.
const Places = 2

// Round rounds amount to two decimal places, half away from zero.
func Round(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(Places).InexactFloat64()
}

// Sum adds amounts in decimal arithmetic.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// Equal reports whether a and b are the same amount once rounded to cents.
func Equal(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(Places).Equal(decimal.NewFromFloat(b).Round(Places))
}

// Format renders amount in the given ISO 4217 currency, e.g. "¥ 1,200".
// Unknown codes fall back to "<amount> <code>".
func Format(amount float64, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return fmt.Sprintf("%s %s", decimal.NewFromFloat(amount).StringFixed(Places), code)
	}
	p := message.NewPrinter(language.English)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
