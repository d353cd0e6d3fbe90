package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as localized currency with two decimals.
type Formatter struct {
	Symbol  string
	printer *message.Printer
}

// New builds a Formatter for a BCP 47 locale such as "en-US". An unknown
// locale falls back to the root locale's separators.
func New(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Formatter{Symbol: symbol, printer: message.NewPrinter(tag)}
}

// Default is en-US Philippine pesos.
func Default() *Formatter {
	return New("en-US", "₱")
}

// Format renders v. NaN and infinities render as zero.
func (f *Formatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return f.Symbol + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}
