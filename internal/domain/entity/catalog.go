package entity

// CatalogRow narxlar manbasidan o'qilgan xom qator (normalizatsiyadan oldin)
type CatalogRow struct {
	Name    string
	Price   string
	Brand   string
	Store   string
	Address string
}

// CatalogEntry narxlar katalogidagi bitta yozuv.
// Bir xil DeviceName bir nechta do'konda uchrashi mumkin: kalit (DeviceName, Store).
type CatalogEntry struct {
	DeviceName string  `json:"device_name"`
	Price      string  `json:"price"`
	PriceValue float64 `json:"price_value"`
	HasPrice   bool    `json:"has_price"` // narx songa aylantirilgan bo'lsa true
	Brand      string  `json:"brand,omitempty"`
	Store      string  `json:"store,omitempty"`
	Address    string  `json:"address,omitempty"`
}

// SpecLink qurilma nomi -> spetsifikatsiya havolasi
type SpecLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DisplayRecord taqdimot qatlami uchun tayyor natija
type DisplayRecord struct {
	DeviceName string  `json:"device_name"`
	Price      string  `json:"price"`
	PriceValue float64 `json:"price_value,omitempty"`
	Brand      string  `json:"brand,omitempty"`
	Store      string  `json:"store,omitempty"`
	Address    string  `json:"address,omitempty"`
	SpecURL    string  `json:"spec_url"`
}

// ColumnMapping narxlar faylidagi ustun sarlavhalari
type ColumnMapping struct {
	Name    string `yaml:"name"`
	Price   string `yaml:"price"`
	Brand   string `yaml:"brand"`
	Store   string `yaml:"store"`
	Address string `yaml:"address"`
}
