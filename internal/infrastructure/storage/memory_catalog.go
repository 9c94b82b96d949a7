package storage

import (
	"sort"
	"strings"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/domain/repository"
)

// LoadStats katalog qurilishidagi statistika
type LoadStats struct {
	Rows           int // manbadan kelgan qatorlar
	Loaded         int // katalogga kirgan yozuvlar
	DroppedNoName  int
	DroppedNoPrice int
	UnpricedKept   int // narxi songa aylanmagan, lekin nom qidiruvi uchun qoldirilgan
}

// Dropped returns how many rows were excluded from the catalog.
func (s LoadStats) Dropped() int {
	return s.DroppedNoName + s.DroppedNoPrice
}

// memoryCatalog o'zgarmas in-memory katalog. NewCatalog dan keyin hech narsa
// yozilmaydi, shuning uchun mutex kerak emas.
type memoryCatalog struct {
	entries []entity.CatalogEntry
	names   []string
	stores  []string
	brands  []string
	byName  map[string][]int
	byStore map[string][]int
	byBrand map[string][]int
}

// NewCatalog xom qatorlardan katalog quradi.
// Nomi yoki narxi bo'sh qatorlar tashlab yuboriladi; narxi songa aylanmagan
// qatorlar HasPrice=false bilan qoladi (narx qidiruvi ularni o'tkazib yuboradi).
func NewCatalog(rows []entity.CatalogRow) (repository.CatalogRepository, LoadStats) {
	stats := LoadStats{Rows: len(rows)}
	c := &memoryCatalog{
		entries: make([]entity.CatalogEntry, 0, len(rows)),
		byName:  make(map[string][]int),
		byStore: make(map[string][]int),
		byBrand: make(map[string][]int),
	}

	storeSet := make(map[string]struct{})
	brandSet := make(map[string]struct{})

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			stats.DroppedNoName++
			continue
		}
		price := strings.TrimSpace(row.Price)
		if price == "" {
			stats.DroppedNoPrice++
			continue
		}

		entry := entity.CatalogEntry{
			DeviceName: name,
			Price:      price,
			Brand:      strings.TrimSpace(row.Brand),
			Store:      strings.TrimSpace(row.Store),
			Address:    strings.TrimSpace(row.Address),
		}
		if value, err := entity.ParsePrice(price); err == nil {
			entry.PriceValue = value
			entry.HasPrice = true
		} else {
			stats.UnpricedKept++
		}

		idx := len(c.entries)
		c.entries = append(c.entries, entry)

		if _, seen := c.byName[name]; !seen {
			c.names = append(c.names, name)
		}
		c.byName[name] = append(c.byName[name], idx)

		if entry.Store != "" {
			storeSet[entry.Store] = struct{}{}
			c.byStore[entry.Store] = append(c.byStore[entry.Store], idx)
		}
		if entry.Brand != "" {
			brandSet[entry.Brand] = struct{}{}
			c.byBrand[entry.Brand] = append(c.byBrand[entry.Brand], idx)
		}
	}

	c.stores = sortedKeys(storeSet)
	c.brands = sortedKeys(brandSet)
	stats.Loaded = len(c.entries)
	return c, stats
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *memoryCatalog) pick(idx []int) []entity.CatalogEntry {
	if len(idx) == 0 {
		return nil
	}
	out := make([]entity.CatalogEntry, len(idx))
	for i, j := range idx {
		out[i] = c.entries[j]
	}
	return out
}

// Entries barcha yozuvlar nusxasi
func (c *memoryCatalog) Entries() []entity.CatalogEntry {
	out := make([]entity.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *memoryCatalog) AllNames() []string  { return append([]string(nil), c.names...) }
func (c *memoryCatalog) AllStores() []string { return append([]string(nil), c.stores...) }
func (c *memoryCatalog) AllBrands() []string { return append([]string(nil), c.brands...) }

func (c *memoryCatalog) EntriesByName(name string) []entity.CatalogEntry {
	return c.pick(c.byName[name])
}

func (c *memoryCatalog) EntriesByStore(store string) []entity.CatalogEntry {
	return c.pick(c.byStore[store])
}

// EntriesByBrand brend bo'yicha, katta-kichik harf farqisiz
func (c *memoryCatalog) EntriesByBrand(brand string) []entity.CatalogEntry {
	if idx, ok := c.byBrand[brand]; ok {
		return c.pick(idx)
	}
	for _, b := range c.brands {
		if strings.EqualFold(b, strings.TrimSpace(brand)) {
			return c.pick(c.byBrand[b])
		}
	}
	return nil
}

func (c *memoryCatalog) Len() int { return len(c.entries) }
