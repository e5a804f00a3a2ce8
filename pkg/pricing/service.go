package pricing

import (
	"sort"
	"strings"
)

// Service resolves USD prices for asset symbols.
type Service interface {
	Price(symbol string) (float64, bool)
	Prices() []AssetPrice
}

// AssetPrice is a single entry of the price table.
type AssetPrice struct {
	Symbol   string  `json:"symbol"`
	PriceUSD float64 `json:"priceUsd"`
}

// StaticService serves prices from a fixed table. It is safe for concurrent use
// because the table is copied on construction and never mutated.
type StaticService struct {
	prices map[string]float64
}

// NewStaticService builds a service over a copy of table. Symbols are case-insensitive.
func NewStaticService(table map[string]float64) *StaticService {
	prices := make(map[string]float64, len(table))
	for symbol, price := range table {
		prices[strings.ToUpper(symbol)] = price
	}
	return &StaticService{prices: prices}
}

func (s *StaticService) Price(symbol string) (float64, bool) {
	p, ok := s.prices[strings.ToUpper(symbol)]
	return p, ok
}

// Prices returns the table sorted by symbol.
func (s *StaticService) Prices() []AssetPrice {
	out := make([]AssetPrice, 0, len(s.prices))
	for symbol, price := range s.prices {
		out = append(out, AssetPrice{Symbol: symbol, PriceUSD: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
