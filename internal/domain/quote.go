package domain

// ExchangeQuote is a resolved conversion rate between two currencies.
// Multiply an amount in the home currency by Rate to get the destination
// amount. A quote is always usable: resolution failures degrade to the
// identity rate rather than an error.
type ExchangeQuote struct {
	HomeCurrency string  `json:"home_currency"`
	DestCurrency string  `json:"dest_currency"`
	Rate         float64 `json:"rate"`
}

// Identity returns the quote used when no conversion is needed or possible:
// rate 1.0 with the destination code passed through.
func Identity(home, dest string) ExchangeQuote {
	return ExchangeQuote{HomeCurrency: home, DestCurrency: dest, Rate: 1.0}
}
