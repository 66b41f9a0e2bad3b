package planner

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyPolicy controls how a base-currency amount is displayed.
// Factor converts from the catalog's base unit; Grouping turns on
// locale-aware digit grouping.
type CurrencyPolicy struct {
	Symbol   string
	Factor   float64
	Locale   language.Tag
	Grouping bool
}

var (
	// CardCurrency is used on catalog cards: rupees at a fixed ×90 rate with
	// Indian digit grouping.
	CardCurrency = CurrencyPolicy{
		Symbol:   "₹",
		Factor:   90,
		Locale:   language.MustParse("en-IN"),
		Grouping: true,
	}

	// ListCurrency is used by search results and the trip panel: the raw
	// base amount with a dollar sign and no grouping.
	ListCurrency = CurrencyPolicy{
		Symbol: "$",
		Factor: 1,
		Locale: language.AmericanEnglish,
	}
)

// Convert applies the policy's conversion factor.
func (p CurrencyPolicy) Convert(amount float64) float64 {
	return amount * p.Factor
}

// Format converts amount and renders it with the policy's symbol.
func (p CurrencyPolicy) Format(amount float64) string {
	return p.Symbol + p.Number(amount)
}

// Number converts amount and renders it without a symbol.
func (p CurrencyPolicy) Number(amount float64) string {
	v := p.Convert(amount)
	if !p.Grouping {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return message.NewPrinter(p.Locale).Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
