package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yourusername/phone-price-bot/internal/domain/constants"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/pkg/fuzzy"
	"gopkg.in/yaml.v3"
)

// Katalog manbasi turlari
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken     string
	AllowEmptySecrets bool

	CatalogSource string // file | postgres
	PricesPath    string
	SpecLinksPath string
	CatalogDSN    string
	CatalogTable  string
	Columns       entity.ColumnMapping

	HTTPAddr  string
	LogLevel  string
	LogFormat string

	Policy entity.Policy
}

// Load konfiguratsiyani yuklash (.env + environment)
func Load() (*Config, error) {
	return load(true)
}

// LoadOffline Telegram token talab qilmaydi (catalogctl uchun)
func LoadOffline() (*Config, error) {
	return load(false)
}

func load(requireSecrets bool) (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:     strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		AllowEmptySecrets: getEnvBool("ALLOW_EMPTY_SECRETS", false),
		CatalogSource:     strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
		PricesPath:        getEnv("PRICES_PATH", "prices.xlsx"),
		SpecLinksPath:     getEnv("SPEC_LINKS_PATH", "phones_urls.json"),
		CatalogDSN:        os.Getenv("CATALOG_DSN"),
		CatalogTable:      getEnv("CATALOG_TABLE", "catalog_prices"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
	}

	columns, err := loadColumns(os.Getenv("COLUMN_MAP_FILE"))
	if err != nil {
		return nil, err
	}
	config.Columns = columns

	policy, err := loadPolicy()
	if err != nil {
		return nil, err
	}
	config.Policy = policy
	if !requireSecrets {
		config.AllowEmptySecrets = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that make the process unable to start.
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceFile:
		if c.PricesPath == "" {
			return fmt.Errorf("PRICES_PATH bo'sh")
		}
	case SourcePostgres:
		if c.CatalogDSN == "" {
			return fmt.Errorf("CATALOG_SOURCE=postgres, lekin CATALOG_DSN bo'sh")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE noto'g'ri: %q (file yoki postgres)", c.CatalogSource)
	}
	if c.TelegramToken == "" && !c.AllowEmptySecrets {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	return nil
}

// BotEnabled Telegram token berilgan bo'lsa true
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != "" && !strings.EqualFold(c.TelegramToken, "disabled")
}

// loadColumns env qiymatlari YAML fayldagidan ustun turadi
func loadColumns(path string) (entity.ColumnMapping, error) {
	var columns entity.ColumnMapping
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return columns, fmt.Errorf("COLUMN_MAP_FILE o'qilmadi: %w", err)
		}
		if columns, err = ParseColumns(data); err != nil {
			return columns, fmt.Errorf("COLUMN_MAP_FILE noto'g'ri formatda: %w", err)
		}
	}

	overrides := map[string]*string{
		"COLUMN_NAME":    &columns.Name,
		"COLUMN_PRICE":   &columns.Price,
		"COLUMN_BRAND":   &columns.Brand,
		"COLUMN_STORE":   &columns.Store,
		"COLUMN_ADDRESS": &columns.Address,
	}
	for key, target := range overrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*target = v
		}
	}
	return columns.WithDefaults(), nil
}

// ParseColumns decodes a YAML column map:
//
//	name: "Model"
//	price: "Price (IQD)"
func ParseColumns(data []byte) (entity.ColumnMapping, error) {
	var columns entity.ColumnMapping
	if err := yaml.Unmarshal(data, &columns); err != nil {
		return entity.ColumnMapping{}, err
	}
	return columns, nil
}

func loadPolicy() (entity.Policy, error) {
	var (
		p   = entity.DefaultPolicy()
		err error
	)
	if p.ConfidentThreshold, err = getEnvInt("CONFIDENT_THRESHOLD", p.ConfidentThreshold); err != nil {
		return p, err
	}
	if p.SuggestThreshold, err = getEnvInt("SUGGEST_THRESHOLD", p.SuggestThreshold); err != nil {
		return p, err
	}
	if p.SpecThreshold, err = getEnvInt("SPEC_THRESHOLD", p.SpecThreshold); err != nil {
		return p, err
	}
	if p.PriceMargin, err = getEnvFloat("PRICE_MARGIN", p.PriceMargin); err != nil {
		return p, err
	}
	if p.MaxQueryRunes, err = getEnvInt("MAX_QUERY_RUNES", p.MaxQueryRunes); err != nil {
		return p, err
	}
	p.FallbackSpecURL = getEnv("FALLBACK_SPEC_URL", constants.FallbackSpecURL)
	p.NameScorer = strings.ToLower(getEnv("NAME_SCORER", p.NameScorer))
	if !fuzzy.KnownScorer(p.NameScorer) {
		return p, fmt.Errorf("NAME_SCORER noma'lum: %q (ratio, partial_ratio, token_sort_ratio)", p.NameScorer)
	}

	if p.SuggestThreshold > p.ConfidentThreshold {
		return p, fmt.Errorf("SUGGEST_THRESHOLD (%d) CONFIDENT_THRESHOLD (%d) dan katta bo'lmasligi kerak", p.SuggestThreshold, p.ConfidentThreshold)
	}
	return p.Normalized(), nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s butun son bo'lishi kerak: %v", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s son bo'lishi kerak: %v", key, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}
