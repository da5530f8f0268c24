// Package currency holds the supported currency set and the static
// exchange-rate table, and converts amounts between currencies.
//
// Rates are expressed as units of a currency per 1 USD (the reference
// unit), so rate("USD") == 1. Rates are a fixed table, not live data;
// conversion accuracy beyond that table is out of scope.
package currency

// Currency describes one supported currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Supported is the ordered set of currencies the application accepts.
// The first entry is the default preferred currency.
var Supported = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "ALL", Symbol: "Lek", Name: "Albanian Lek"},
}

// rates maps currency codes to units per 1 USD.
var rates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"ALL": 94.5,
}

// Default returns the default preferred currency.
func Default() Currency {
	return Supported[0]
}

// IsSupported reports whether code is in the supported set.
func IsSupported(code string) bool {
	for _, c := range Supported {
		if c.Code == code {
			return true
		}
	}
	return false
}

// ByCode looks up a supported currency by code.
func ByCode(code string) (Currency, bool) {
	for _, c := range Supported {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Rate returns the exchange rate for code, falling back to 1 for
// unknown codes. The fallback is deliberate: malformed persisted data
// degrades to identity conversion instead of failing.
func Rate(code string) float64 {
	if r, ok := rates[code]; ok {
		return r
	}
	return 1
}

// Normalize converts amount from one currency to another through the
// reference unit: (amount / rate(from)) * rate(to). No rounding is
// applied; rounding is strictly a display concern.
func Normalize(amount float64, fromCode, toCode string) float64 {
	return amount / Rate(fromCode) * Rate(toCode)
}
