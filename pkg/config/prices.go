package config

import (
	"os"
	"strconv"
	"strings"
)

const pricePrefix = "PRICE_"

// DefaultPrices is the fallback USD price table.
func DefaultPrices() map[string]float64 {
	return map[string]float64{
		"XLM":          0.1,
		"USDC":         1,
		"EURC":         1.08,
		"BLND":         0.05,
		"AQUA":         0.0008,
		"BLND-USDC-LP": 0.5,
	}
}

// PricesFromEnv applies PRICE_<SYMBOL> overrides from environ onto base and
// returns a new table. Underscores in the symbol part map to dashes, so
// PRICE_BLND_USDC_LP sets BLND-USDC-LP. Malformed or negative values are ignored.
func PricesFromEnv(base map[string]float64, environ []string) map[string]float64 {
	out := make(map[string]float64, len(base))
	for k, v := range base {
		out[strings.ToUpper(k)] = v
	}

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, pricePrefix) {
			continue
		}
		symbol := strings.ReplaceAll(strings.TrimPrefix(key, pricePrefix), "_", "-")
		if symbol == "" {
			continue
		}
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price < 0 {
			continue
		}
		out[strings.ToUpper(symbol)] = price
	}
	return out
}

func pricesFromProcessEnv() map[string]float64 {
	return PricesFromEnv(DefaultPrices(), os.Environ())
}
