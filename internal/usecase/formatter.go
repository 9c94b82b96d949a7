package usecase

import "github.com/yourusername/phone-price-bot/internal/domain/entity"

// SpecURLResolver qurilma nomidan spetsifikatsiya havolasini topadi
type SpecURLResolver interface {
	ResolveSpecURL(name string) string
}

// Formatter katalog yozuvlarini taqdimot uchun DisplayRecord ga aylantiradi
type Formatter struct {
	specs SpecURLResolver
}

// NewFormatter yangi Formatter yaratish
func NewFormatter(specs SpecURLResolver) *Formatter {
	return &Formatter{specs: specs}
}

// Format copies entry fields and attaches the resolved spec URL. No I/O.
func (f *Formatter) Format(entries []entity.CatalogEntry) []entity.DisplayRecord {
	out := make([]entity.DisplayRecord, 0, len(entries))
	for _, e := range entries {
		rec := entity.DisplayRecord{
			DeviceName: e.DeviceName,
			Price:      e.Price,
			Brand:      e.Brand,
			Store:      e.Store,
			Address:    e.Address,
		}
		if e.HasPrice {
			rec.PriceValue = e.PriceValue
		}
		if f.specs != nil {
			rec.SpecURL = f.specs.ResolveSpecURL(e.DeviceName)
		}
		out = append(out, rec)
	}
	return out
}
