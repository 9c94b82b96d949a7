package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	arabicThousandsSep = '٬'
	arabicDecimalSep   = '٫'
)

// FoldDigit maps Arabic-Indic and extended (Persian) digits to ASCII.
func FoldDigit(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r == arabicDecimalSep:
		return '.'
	}
	return r
}

func isGroupingRune(r rune) bool {
	switch r {
	case ',', arabicThousandsSep, '\'', '_':
		return true
	}
	return unicode.IsSpace(r)
}

var priceCleaner = transform.Chain(
	runes.Map(FoldDigit),
	runes.Remove(runes.Predicate(isGroupingRune)),
)

// ParsePrice lokal formatdagi narx matnini songa aylantiradi.
// "1,300,000", "١٬٣٠٠٬٠٠٠" va "750 000 IQD" ko'rinishlari qo'llab-quvvatlanadi.
func ParsePrice(raw string) (float64, error) {
	cleaned, _, err := transform.String(priceCleaner, strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	// valyuta belgilarini chetlardan olib tashlash
	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-'
	})
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return value, nil
}

// FormatPrice renders a price with ASCII thousands separators.
func FormatPrice(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}
	whole := strconv.FormatFloat(math.Round(value), 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
