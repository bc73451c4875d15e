package provider

import (
	"fxreturns/internal/fx"
)

// SpotTickers returns the provider tickers of the universe's spot feed, in
// canonical currency order. Tickers start with the currency code so the
// engine's column normalization can recover it.
func SpotTickers(u fx.Universe) []string {
	out := make([]string, 0, len(u.Currencies))
	for _, code := range u.Currencies {
		out = append(out, code+" Curncy")
	}
	return out
}

// RateTickers returns the provider tickers of the interest-rate feed, in
// canonical currency order. Currencies without a provider rate code are
// skipped.
func RateTickers(u fx.Universe) []string {
	reverse := make(map[string]string, len(u.RateTickers))
	for providerCode, canonical := range u.RateTickers {
		reverse[canonical] = providerCode
	}

	out := make([]string, 0, len(u.Currencies))
	for _, code := range u.Currencies {
		if providerCode, ok := reverse[code]; ok {
			out = append(out, providerCode+" Curncy")
		}
	}
	return out
}
