package repository

import (
	"context"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

// CatalogRepository ishga tushishda qurilgan o'zgarmas narxlar katalogi.
// Barcha metodlar faqat o'qiydi va parallel chaqiruvlar uchun xavfsiz.
type CatalogRepository interface {
	// Entries barcha yozuvlar, katalog tartibida
	Entries() []entity.CatalogEntry

	// AllNames noyob qurilma nomlari (birinchi uchrash tartibida)
	AllNames() []string

	// AllStores noyob do'konlar (saralangan)
	AllStores() []string

	// AllBrands noyob brendlar (saralangan)
	AllBrands() []string

	// EntriesByName aniq nom bo'yicha yozuvlar
	EntriesByName(name string) []entity.CatalogEntry

	// EntriesByStore aniq do'kon nomi bo'yicha yozuvlar
	EntriesByStore(store string) []entity.CatalogEntry

	// EntriesByBrand aniq brend bo'yicha yozuvlar
	EntriesByBrand(brand string) []entity.CatalogEntry

	Len() int
}

// SpecLinkRepository qurilma nomi -> spetsifikatsiya havolasi jadvali
type SpecLinkRepository interface {
	Lookup(name string) (string, bool)
	Names() []string
	Len() int
}

// CatalogSource narxlar qatorlarini beradigan manba (Excel, CSV, Postgres)
type CatalogSource interface {
	Rows(ctx context.Context) ([]entity.CatalogRow, error)
	Name() string
}
