package app

import (
	"context"
	"time"

	"github.com/yourusername/phone-price-bot/config"
	"github.com/yourusername/phone-price-bot/internal/domain/repository"
	"github.com/yourusername/phone-price-bot/internal/infrastructure/parser"
	"github.com/yourusername/phone-price-bot/internal/infrastructure/postgres"
	"github.com/yourusername/phone-price-bot/internal/infrastructure/storage"
	"github.com/yourusername/phone-price-bot/internal/usecase"
	"github.com/yourusername/phone-price-bot/pkg/logger"
)

// CatalogStatsRecorder yuklash statistikasini qabul qiladi (metrics gauge lar)
type CatalogStatsRecorder interface {
	SetCatalog(rows, loaded, dropped, unpriced, specLinks int)
}

// Catalog ishga tushishda qurilgan o'zgarmas katalog va engine
type Catalog struct {
	Resolver  usecase.CatalogResolver
	Stats     storage.LoadStats
	SpecLinks int
	Source    string
}

// NewSource config bo'yicha narxlar manbasini tanlaydi
func NewSource(cfg *config.Config) repository.CatalogSource {
	if cfg.CatalogSource == config.SourcePostgres {
		return postgres.NewCatalogSource(cfg.CatalogDSN, cfg.CatalogTable, cfg.Columns, postgres.WithRetry(5, 2*time.Second))
	}
	return parser.NewFileSource(cfg.PricesPath, cfg.Columns)
}

// LoadCatalog narxlar va spec havolalarini o'qib engine ni quradi.
// Har qanday *entity.LoadError qaytariladi, qisman katalog bilan ishlanmaydi.
func LoadCatalog(ctx context.Context, cfg *config.Config, source repository.CatalogSource, recorder CatalogStatsRecorder) (*Catalog, error) {
	log := logger.Component("catalog")
	start := time.Now()

	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, err
	}
	links, err := parser.LoadSpecLinks(cfg.SpecLinksPath)
	if err != nil {
		return nil, err
	}

	catalog, stats := storage.NewCatalog(rows)
	specs := storage.NewSpecLinks(links)

	if stats.Dropped() > 0 {
		log.Warn().
			Int("no_name", stats.DroppedNoName).
			Int("no_price", stats.DroppedNoPrice).
			Msg("⚠️ ba'zi qatorlar katalogga kiritilmadi")
	}
	log.Info().
		Str("source", source.Name()).
		Int("rows", stats.Rows).
		Int("loaded", stats.Loaded).
		Int("unpriced", stats.UnpricedKept).
		Int("spec_links", specs.Len()).
		Dur("took", time.Since(start)).
		Msg("✅ katalog yuklandi")

	if recorder != nil {
		recorder.SetCatalog(stats.Rows, stats.Loaded, stats.Dropped(), stats.UnpricedKept, specs.Len())
	}

	return &Catalog{
		Resolver:  usecase.NewCatalogResolver(catalog, specs, cfg.Policy),
		Stats:     stats,
		SpecLinks: specs.Len(),
		Source:    source.Name(),
	}, nil
}
