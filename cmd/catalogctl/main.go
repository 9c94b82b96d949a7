package main

import (
	"context"
	"os"

	"github.com/yourusername/phone-price-bot/config"
	"github.com/yourusername/phone-price-bot/internal/app"
	"github.com/yourusername/phone-price-bot/pkg/logger"
)

func main() {
	root := newRootCmd(loadFromConfig)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadFromConfig .env/environment dan konfiguratsiya, flaglar ustun turadi
func loadFromConfig(ctx context.Context, opts loadOptions) (*app.Catalog, error) {
	cfg, err := config.LoadOffline()
	if err != nil {
		return nil, err
	}
	if opts.PricesPath != "" {
		cfg.CatalogSource = config.SourceFile
		cfg.PricesPath = opts.PricesPath
	}
	if opts.SpecLinksPath != "" {
		cfg.SpecLinksPath = opts.SpecLinksPath
	}
	level := cfg.LogLevel
	if !opts.Verbose {
		level = "warn"
	}
	logger.InitWithWriter(level, "console", os.Stderr)

	return app.LoadCatalog(ctx, cfg, app.NewSource(cfg), nil)
}
