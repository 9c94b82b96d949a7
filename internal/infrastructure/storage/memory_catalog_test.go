package storage

import (
	"reflect"
	"testing"

	"github.com/yourusername/phone-price-bot/internal/domain/constants"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

func sampleRows() []entity.CatalogRow {
	return []entity.CatalogRow{
		{Name: " Galaxy S23 ", Price: "750,000", Brand: "Samsung", Store: " Store A ", Address: "Karrada"},
		{Name: "Galaxy S23", Price: "٧٤٠٬٠٠٠", Brand: "Samsung", Store: "Store B"},
		{Name: "iPhone 15", Price: "1,200,000", Brand: "Apple", Store: "Store A"},
		{Name: "", Price: "100", Brand: "Nokia", Store: "Store C"},
		{Name: "Redmi Note 12", Price: "  ", Brand: "Xiaomi", Store: "Store C"},
		{Name: "Pixel 8", Price: "call us", Brand: "Google", Store: "Store D"},
	}
}

func TestNewCatalog_DropsRowsAndCountsStats(t *testing.T) {
	catalog, stats := NewCatalog(sampleRows())

	want := LoadStats{Rows: 6, Loaded: 4, DroppedNoName: 1, DroppedNoPrice: 1, UnpricedKept: 1}
	if stats != want {
		t.Fatalf("stats: kutilgan %+v, natija %+v", want, stats)
	}
	if stats.Dropped() != 2 {
		t.Errorf("Dropped: kutilgan 2, natija %d", stats.Dropped())
	}
	if catalog.Len() != 4 {
		t.Fatalf("Len: kutilgan 4, natija %d", catalog.Len())
	}
}

func TestNewCatalog_TrimsAndParsesPrices(t *testing.T) {
	catalog, _ := NewCatalog(sampleRows())
	entries := catalog.Entries()

	first := entries[0]
	if first.DeviceName != "Galaxy S23" || first.Store != "Store A" {
		t.Errorf("trim ishlamadi: %+v", first)
	}
	if !first.HasPrice || first.PriceValue != 750000 {
		t.Errorf("narx: %+v", first)
	}
	if entries[1].PriceValue != 740000 {
		t.Errorf("arabcha narx: kutilgan 740000, natija %v", entries[1].PriceValue)
	}
	pixel := entries[3]
	if pixel.DeviceName != "Pixel 8" || pixel.HasPrice {
		t.Errorf("narxsiz yozuv nom qidiruvi uchun qolishi kerak: %+v", pixel)
	}
}

func TestNameIndex(t *testing.T) {
	catalog, _ := NewCatalog(sampleRows())

	if got, want := catalog.AllNames(), []string{"Galaxy S23", "iPhone 15", "Pixel 8"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllNames: kutilgan %v, natija %v", want, got)
	}
	if got, want := catalog.AllStores(), []string{"Store A", "Store B", "Store D"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllStores: kutilgan %v, natija %v", want, got)
	}
	if got, want := catalog.AllBrands(), []string{"Apple", "Google", "Samsung"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllBrands: kutilgan %v, natija %v", want, got)
	}

	if n := len(catalog.EntriesByName("Galaxy S23")); n != 2 {
		t.Errorf("EntriesByName: kutilgan 2, natija %d", n)
	}
	if n := len(catalog.EntriesByStore("Store A")); n != 2 {
		t.Errorf("EntriesByStore: kutilgan 2, natija %d", n)
	}
	if n := len(catalog.EntriesByBrand("samsung")); n != 2 {
		t.Errorf("EntriesByBrand case-insensitive: kutilgan 2, natija %d", n)
	}
	if got := catalog.EntriesByName("galaxy s23"); got != nil {
		t.Errorf("EntriesByName aniq bo'lishi kerak, natija %v", got)
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	catalog, _ := NewCatalog(sampleRows())

	names := catalog.AllNames()
	names[0] = "mutated"
	entries := catalog.Entries()
	entries[0].DeviceName = "mutated"

	if catalog.AllNames()[0] != "Galaxy S23" || catalog.Entries()[0].DeviceName != "Galaxy S23" {
		t.Fatal("katalog tashqaridan o'zgarmasligi kerak")
	}
}

func TestNewSpecLinks(t *testing.T) {
	links := NewSpecLinks([]entity.SpecLink{
		{Name: " Galaxy S23 ", URL: "https://specs.example/s23"},
		{Name: "Galaxy S23", URL: "https://specs.example/duplicate"},
		{Name: "Nokia 3310", URL: ""},
		{Name: "  ", URL: "https://specs.example/empty"},
	})

	if links.Len() != 2 {
		t.Fatalf("Len: kutilgan 2, natija %d", links.Len())
	}
	if url, ok := links.Lookup("Galaxy S23"); !ok || url != "https://specs.example/duplicate" {
		t.Errorf("Lookup: takroriy nomda oxirgi url kutilgan, natija %q %v", url, ok)
	}
	if names := links.Names(); len(names) != 2 || names[0] != "Galaxy S23" {
		t.Errorf("Names: kutilgan [Galaxy S23 Nokia 3310], natija %v", names)
	}
	if url, _ := links.Lookup("Nokia 3310"); url != constants.SpecURLUnavailable {
		t.Errorf("url yo'q bo'lsa %q kutilgan, natija %q", constants.SpecURLUnavailable, url)
	}
	if _, ok := links.Lookup("Pixel"); ok {
		t.Error("mavjud bo'lmagan nom topilmasligi kerak")
	}
}
