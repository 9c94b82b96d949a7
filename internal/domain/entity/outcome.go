package entity

// OutcomeKind qidiruv natijasi turi
type OutcomeKind int

const (
	// OutcomeNoMatch hech narsa topilmadi
	OutcomeNoMatch OutcomeKind = iota
	// OutcomeConfident natija ishonchli, darhol ko'rsatiladi
	OutcomeConfident
	// OutcomeSuggest bir nechta nomzod, foydalanuvchi tanlashi kerak
	OutcomeSuggest
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeConfident:
		return "confident"
	case OutcomeSuggest:
		return "suggest"
	default:
		return "no_match"
	}
}

// Suggestion taklif qilingan nom va uning o'xshashlik bali
type Suggestion struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Outcome resolution engine natijasi
type Outcome struct {
	Kind        OutcomeKind
	Entries     []CatalogEntry
	Suggestions []Suggestion
}

// NoMatch bo'sh natija
func NoMatch() Outcome {
	return Outcome{Kind: OutcomeNoMatch}
}

// Confident returns a confident outcome, or NoMatch when entries is empty.
func Confident(entries []CatalogEntry) Outcome {
	if len(entries) == 0 {
		return NoMatch()
	}
	return Outcome{Kind: OutcomeConfident, Entries: entries}
}

// Suggest returns a suggestion outcome, or NoMatch when there is nothing to offer.
func Suggest(suggestions []Suggestion) Outcome {
	if len(suggestions) == 0 {
		return NoMatch()
	}
	return Outcome{Kind: OutcomeSuggest, Suggestions: suggestions}
}

// SuggestionNames returns the suggested names in offered order.
func (o Outcome) SuggestionNames() []string {
	names := make([]string, len(o.Suggestions))
	for i, s := range o.Suggestions {
		names[i] = s.Name
	}
	return names
}
