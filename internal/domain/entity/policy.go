package entity

import (
	"strings"
	"unicode/utf8"

	"github.com/yourusername/phone-price-bot/internal/domain/constants"
)

// Policy resolution engine chegaralari (sozlanadigan konstantalar)
type Policy struct {
	ConfidentThreshold int
	SuggestThreshold   int
	SpecThreshold      int
	NameRankLimit      int
	MaxSuggestions     int
	PriceMargin        float64
	FallbackSpecURL    string
	MaxQueryRunes      int
	NameScorer         string
}

// DefaultPolicy returns the thresholds the bot has always used: 90 / 70 / 80 and a ±10% price band.
func DefaultPolicy() Policy {
	return Policy{
		ConfidentThreshold: constants.ConfidentThreshold,
		SuggestThreshold:   constants.SuggestThreshold,
		SpecThreshold:      constants.SpecThreshold,
		NameRankLimit:      constants.NameRankLimit,
		MaxSuggestions:     constants.MaxSuggestions,
		PriceMargin:        constants.PriceMargin,
		FallbackSpecURL:    constants.FallbackSpecURL,
		MaxQueryRunes:      constants.MaxQueryRunes,
		NameScorer:         constants.NameScorer,
	}
}

// Normalized fills zero or inconsistent fields from DefaultPolicy.
func (p Policy) Normalized() Policy {
	def := DefaultPolicy()
	if p.ConfidentThreshold <= 0 || p.ConfidentThreshold > 100 {
		p.ConfidentThreshold = def.ConfidentThreshold
	}
	if p.SuggestThreshold <= 0 || p.SuggestThreshold > p.ConfidentThreshold {
		p.SuggestThreshold = def.SuggestThreshold
		if p.SuggestThreshold > p.ConfidentThreshold {
			p.SuggestThreshold = p.ConfidentThreshold
		}
	}
	if p.SpecThreshold <= 0 || p.SpecThreshold > 100 {
		p.SpecThreshold = def.SpecThreshold
	}
	if p.NameRankLimit <= 0 {
		p.NameRankLimit = def.NameRankLimit
	}
	if p.MaxSuggestions <= 0 {
		p.MaxSuggestions = def.MaxSuggestions
	}
	if p.PriceMargin <= 0 || p.PriceMargin >= 1 {
		p.PriceMargin = def.PriceMargin
	}
	if p.FallbackSpecURL == "" {
		p.FallbackSpecURL = def.FallbackSpecURL
	}
	if p.MaxQueryRunes <= 0 {
		p.MaxQueryRunes = def.MaxQueryRunes
	}
	if p.NameScorer == "" {
		p.NameScorer = def.NameScorer
	}
	return p
}

// QueryTooLong so'rov MaxQueryRunes dan uzunmi
func (p Policy) QueryTooLong(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) > p.MaxQueryRunes
}

// PriceBand returns the inclusive acceptance window around price.
func (p Policy) PriceBand(price float64) (lo, hi float64) {
	return price * (1 - p.PriceMargin), price * (1 + p.PriceMargin)
}

// DefaultColumns returns the header labels used in the shop's price spreadsheet.
func DefaultColumns() ColumnMapping {
	return ColumnMapping{
		Name:    constants.DefaultNameColumn,
		Price:   constants.DefaultPriceColumn,
		Brand:   constants.DefaultBrandColumn,
		Store:   constants.DefaultStoreColumn,
		Address: constants.DefaultAddressColumn,
	}
}

// WithDefaults fills empty labels from DefaultColumns.
func (m ColumnMapping) WithDefaults() ColumnMapping {
	def := DefaultColumns()
	if m.Name == "" {
		m.Name = def.Name
	}
	if m.Price == "" {
		m.Price = def.Price
	}
	if m.Brand == "" {
		m.Brand = def.Brand
	}
	if m.Store == "" {
		m.Store = def.Store
	}
	if m.Address == "" {
		m.Address = def.Address
	}
	return m
}
