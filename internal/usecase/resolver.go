package usecase

import (
	"fmt"
	"strings"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/domain/repository"
	"github.com/yourusername/phone-price-bot/pkg/fuzzy"
)

// CatalogResolver narxlar katalogi bo'yicha qidiruv (resolution engine).
// Barcha metodlar faqat o'qiydi va parallel chaqiruvlar uchun xavfsiz.
type CatalogResolver interface {
	SearchByName(query string) entity.Outcome
	SearchByPrice(query string) (entity.Outcome, error)
	SearchByStore(query string) entity.Outcome
	SearchByBrand(query string) entity.Outcome
	SearchByNameInStore(store, query string) entity.Outcome
	ResolveSpecURL(name string) string

	Brands() []string
	Stores() []string
	DevicesByBrand(brand string) []entity.CatalogEntry
	DevicesInStore(store string) []entity.CatalogEntry
	Policy() entity.Policy
	Len() int
}

type catalogResolver struct {
	catalog repository.CatalogRepository
	specs   repository.SpecLinkRepository
	policy  entity.Policy
	scorer  fuzzy.Scorer

	names     []string
	specNames []string
}

// NewCatalogResolver yangi CatalogResolver yaratish.
// Policy ning bo'sh maydonlari default qiymatlar bilan to'ldiriladi.
func NewCatalogResolver(
	catalog repository.CatalogRepository,
	specs repository.SpecLinkRepository,
	policy entity.Policy,
) CatalogResolver {
	policy = policy.Normalized()
	r := &catalogResolver{
		catalog: catalog,
		specs:   specs,
		policy:  policy,
		scorer:  fuzzy.ByName(policy.NameScorer),
		names:   catalog.AllNames(),
	}
	if specs != nil {
		r.specNames = specs.Names()
	}
	return r
}

func (r *catalogResolver) Policy() entity.Policy { return r.policy }

func (r *catalogResolver) Len() int { return r.catalog.Len() }

func (r *catalogResolver) Brands() []string { return r.catalog.AllBrands() }

func (r *catalogResolver) Stores() []string { return r.catalog.AllStores() }

func (r *catalogResolver) DevicesByBrand(brand string) []entity.CatalogEntry {
	return r.catalog.EntriesByBrand(strings.TrimSpace(brand))
}

func (r *catalogResolver) DevicesInStore(store string) []entity.CatalogEntry {
	return r.catalog.EntriesByStore(strings.TrimSpace(store))
}

// SearchByName nom bo'yicha qidiruv:
// aniq moslik -> darhol javob; >= ConfidentThreshold -> barcha mos yozuvlar;
// [SuggestThreshold, ConfidentThreshold) -> takliflar; aks holda NoMatch.
// MaxQueryRunes dan uzun so'rov NoMatch.
func (r *catalogResolver) SearchByName(query string) entity.Outcome {
	if r.policy.QueryTooLong(query) {
		return entity.NoMatch()
	}
	if exact := r.catalog.EntriesByName(query); len(exact) > 0 {
		return entity.Confident(exact)
	}
	return r.resolveName(query, r.names, r.catalog.Entries())
}

// SearchByNameInStore faqat bitta do'kon yozuvlari ichida nom qidiradi
func (r *catalogResolver) SearchByNameInStore(store, query string) entity.Outcome {
	entries := r.catalog.EntriesByStore(strings.TrimSpace(store))
	if len(entries) == 0 {
		return entity.NoMatch()
	}
	return r.resolveName(query, uniqueNames(entries), entries)
}

func (r *catalogResolver) resolveName(query string, names []string, entries []entity.CatalogEntry) entity.Outcome {
	if strings.TrimSpace(query) == "" || len(names) == 0 || r.policy.QueryTooLong(query) {
		return entity.NoMatch()
	}

	for _, name := range names {
		if name == query {
			return entity.Confident(filterByNames(entries, map[string]struct{}{name: {}}))
		}
	}

	ranked := fuzzy.Extract(query, names, r.policy.NameRankLimit, r.policy.SuggestThreshold, r.scorer)
	confident := make(map[string]struct{})
	var suggestions []entity.Suggestion
	for _, m := range ranked {
		switch {
		case m.Score >= r.policy.ConfidentThreshold:
			confident[m.Candidate] = struct{}{}
		case len(suggestions) < r.policy.MaxSuggestions:
			suggestions = append(suggestions, entity.Suggestion{Name: m.Candidate, Score: m.Score})
		}
	}
	if len(confident) > 0 {
		return entity.Confident(filterByNames(entries, confident))
	}
	return entity.Suggest(suggestions)
}

// SearchByPrice narx atrofidagi ±PriceMargin oralig'idagi barcha yozuvlar.
// Narx songa aylanmasa entity.ErrInvalidPrice qaytadi.
func (r *catalogResolver) SearchByPrice(query string) (entity.Outcome, error) {
	if r.policy.QueryTooLong(query) {
		return entity.NoMatch(), fmt.Errorf("%w: query longer than %d characters", entity.ErrInvalidPrice, r.policy.MaxQueryRunes)
	}
	price, err := entity.ParsePrice(query)
	if err != nil {
		return entity.NoMatch(), err
	}
	if price <= 0 {
		return entity.NoMatch(), fmt.Errorf("%w: %q must be positive", entity.ErrInvalidPrice, query)
	}

	lo, hi := r.policy.PriceBand(price)
	var matched []entity.CatalogEntry
	for _, e := range r.catalog.Entries() {
		if e.HasPrice && e.PriceValue >= lo && e.PriceValue <= hi {
			matched = append(matched, e)
		}
	}
	return entity.Confident(matched), nil
}

// SearchByStore avval do'kon nomi ichida qism-satr sifatida qidiradi, keyin fuzzy
func (r *catalogResolver) SearchByStore(query string) entity.Outcome {
	return r.resolveGroup(query, r.catalog.AllStores(), r.catalog.EntriesByStore)
}

// SearchByBrand works like SearchByStore over brand names.
func (r *catalogResolver) SearchByBrand(query string) entity.Outcome {
	return r.resolveGroup(query, r.catalog.AllBrands(), r.catalog.EntriesByBrand)
}

func (r *catalogResolver) resolveGroup(query string, groups []string, entriesOf func(string) []entity.CatalogEntry) entity.Outcome {
	if r.policy.QueryTooLong(query) {
		return entity.NoMatch()
	}
	q := fuzzy.Normalize(query)
	if q == "" || len(groups) == 0 {
		return entity.NoMatch()
	}

	var resolved []string
	for _, g := range groups {
		if strings.Contains(fuzzy.Normalize(g), q) {
			resolved = append(resolved, g)
		}
	}

	if len(resolved) == 0 {
		var suggestions []entity.Suggestion
		for _, m := range fuzzy.Extract(query, groups, r.policy.NameRankLimit, r.policy.SuggestThreshold, r.scorer) {
			switch {
			case m.Score >= r.policy.ConfidentThreshold:
				resolved = append(resolved, m.Candidate)
			case len(suggestions) < r.policy.MaxSuggestions:
				suggestions = append(suggestions, entity.Suggestion{Name: m.Candidate, Score: m.Score})
			}
		}
		if len(resolved) == 0 {
			return entity.Suggest(suggestions)
		}
	}

	var entries []entity.CatalogEntry
	for _, g := range resolved {
		entries = append(entries, entriesOf(g)...)
	}
	return entity.Confident(entries)
}

// ResolveSpecURL hech qachon xato qaytarmaydi: aniq moslik, fuzzy (>= SpecThreshold)
// yoki FallbackSpecURL. Juda uzun nom to'g'ridan-to'g'ri fallback.
func (r *catalogResolver) ResolveSpecURL(name string) string {
	if r.specs == nil || strings.TrimSpace(name) == "" || r.policy.QueryTooLong(name) {
		return r.policy.FallbackSpecURL
	}
	if url, ok := r.specs.Lookup(name); ok {
		return url
	}
	best, ok := fuzzy.Best(name, r.specNames, fuzzy.PartialRatio)
	if ok && best.Score >= r.policy.SpecThreshold {
		if url, found := r.specs.Lookup(best.Candidate); found {
			return url
		}
	}
	return r.policy.FallbackSpecURL
}

func uniqueNames(entries []entity.CatalogEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.DeviceName]; ok {
			continue
		}
		seen[e.DeviceName] = struct{}{}
		names = append(names, e.DeviceName)
	}
	return names
}

func filterByNames(entries []entity.CatalogEntry, names map[string]struct{}) []entity.CatalogEntry {
	var out []entity.CatalogEntry
	for _, e := range entries {
		if _, ok := names[e.DeviceName]; ok {
			out = append(out, e)
		}
	}
	return out
}
