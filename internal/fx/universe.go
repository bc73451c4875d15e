package fx

// Universe describes the currency set the return engine operates on. It is
// explicit configuration rather than package state so the engine can be
// exercised against reduced or synthetic currency sets in tests.
type Universe struct {
	// Currencies is the ordered canonical code set. Output columns and the
	// long-form reshape follow this order.
	Currencies []string

	// Reference is the denomination currency. Its return series is the
	// interest-rate factor directly, with no spot term.
	Reference string

	// Reciprocal lists the currencies quoted as USD-per-foreign in the raw
	// feed. Their spot values are inverted onto the common
	// foreign-per-USD convention before any return is computed.
	Reciprocal []string

	// PriceFieldMarker identifies provider spot columns that need ticker
	// cleanup. Columns without the marker pass through unchanged.
	PriceFieldMarker string

	// RateTickers maps provider interest-rate codes to canonical
	// currency codes.
	RateTickers map[string]string
}

// DefaultUniverse returns the nine-currency G10 subset the pipeline ships
// with: USD as the reference and Bloomberg ticker conventions for both feeds.
func DefaultUniverse() Universe {
	return Universe{
		Currencies:       []string{"AUD", "CAD", "CHF", "EUR", "GBP", "JPY", "NZD", "SEK", "USD"},
		Reference:        "USD",
		Reciprocal:       []string{"EUR", "GBP", "AUD", "NZD"},
		PriceFieldMarker: "_PX_LAST",
		RateTickers: map[string]string{
			"ADS": "AUD",
			"CDS": "CAD",
			"SFS": "CHF",
			"EUS": "EUR",
			"BPS": "GBP",
			"JYS": "JPY",
			"NDS": "NZD",
			"SKS": "SEK",
			"USS": "USD",
		},
	}
}

// Contains reports whether code is part of the canonical set.
func (u Universe) Contains(code string) bool {
	for _, c := range u.Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// IsReciprocal reports whether code is quoted as USD-per-foreign in the raw
// feed.
func (u Universe) IsReciprocal(code string) bool {
	for _, c := range u.Reciprocal {
		if c == code {
			return true
		}
	}
	return false
}
