package fx

import (
	"strings"

	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/timeseries"
)

// cleanTicker reduces a provider ticker to its short code. Column names
// carrying the price-field marker become the first three characters of the
// first whitespace-delimited token; everything else passes through unchanged.
func cleanTicker(name, marker string) string {
	if marker == "" || !strings.Contains(name, marker) {
		return name
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	token := fields[0]
	if len(token) > 3 {
		token = token[:3]
	}
	return token
}

// NormalizeSpotColumns renames provider spot tickers onto canonical currency
// codes. Columns that do not carry the price-field marker pass through
// unchanged; two raw columns collapsing onto the same code is an error.
func NormalizeSpotColumns(f *timeseries.Frame, u Universe) (*timeseries.Frame, error) {
	out, err := f.Rename(func(name string) string {
		return cleanTicker(name, u.PriceFieldMarker)
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("table", "spot")
	}
	return out, nil
}

// NormalizeRateColumns renames provider interest-rate tickers onto canonical
// currency codes via the universe's fixed lookup. Unmapped columns pass
// through unchanged.
func NormalizeRateColumns(f *timeseries.Frame, u Universe) (*timeseries.Frame, error) {
	out, err := f.Rename(func(name string) string {
		cleaned := cleanTicker(name, u.PriceFieldMarker)
		if canonical, ok := u.RateTickers[cleaned]; ok {
			return canonical
		}
		return cleaned
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("table", "interest rate")
	}
	return out, nil
}

// ValidateCanonical asserts that every currency of the universe survived
// normalization as a column of f. A renamed upstream ticker then fails the
// run loudly instead of degrading into an empty return column downstream.
func ValidateCanonical(f *timeseries.Frame, u Universe, table string) error {
	var missing []string
	for _, code := range u.Currencies {
		if !f.HasColumn(code) {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewMissingCurrencyError(table, missing)
	}
	return nil
}
