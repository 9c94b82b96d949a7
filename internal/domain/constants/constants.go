package constants

import "time"

// Qidiruv siyosati (resolution policy) konstantalari
const (
	// ConfidentThreshold shu balldan yuqori nom darhol javob sifatida qaytariladi
	ConfidentThreshold = 90

	// SuggestThreshold shu balldan boshlab nom taklif sifatida ko'rsatiladi
	SuggestThreshold = 70

	// SpecThreshold spetsifikatsiya havolasi uchun minimal ball
	SpecThreshold = 80

	// NameRankLimit nom qidiruvida ko'rib chiqiladigan nomzodlar soni
	NameRankLimit = 20

	// MaxSuggestions foydalanuvchiga ko'rsatiladigan max takliflar
	MaxSuggestions = 6

	// PriceMargin narx oralig'i: [narx*(1-margin), narx*(1+margin)]
	PriceMargin = 0.1

	// MaxQueryRunes bundan uzun so'rov fuzzy scorer ga berilmaydi
	MaxQueryRunes = 128

	// NameScorer nom qidiruvida ishlatiladigan scorer (pkg/fuzzy.ByName)
	NameScorer = "ratio"
)

// Spetsifikatsiya havolalari
const (
	// FallbackSpecURL hech narsa topilmaganda qaytariladigan "biz bilan bog'laning" havolasi
	FallbackSpecURL = "https://t.me/mitech808"

	// SpecURLUnavailable url ko'rsatilmagan yozuvlar uchun belgi
	SpecURLUnavailable = "unavailable"
)

// Sessiya va UI konstantalari
const (
	// SessionTimeout tanlov kutayotgan sessiya shu vaqtdan keyin bekor bo'ladi
	SessionTimeout = 15 * time.Minute

	// ResultsPerPage bitta sahifadagi qurilmalar soni
	ResultsPerPage = 10

	// MaxPickerButtons brend/do'kon tanlash menyusidagi max tugmalar
	MaxPickerButtons = 30
)

// Default price file column headers, as authored in the shop's spreadsheet.
const (
	DefaultNameColumn    = "الاسم (name)"
	DefaultPriceColumn   = "السعر (price)"
	DefaultBrandColumn   = "الماركه ( Brand )"
	DefaultStoreColumn   = "المتجر"
	DefaultAddressColumn = "العنوان"
)
