package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/domain/repository"
)

const (
	connectAttemptsDefault = 10
	connectDelayDefault    = 2 * time.Second
)

// Postgres xato kodlari
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
	codeInvalidCatalog  = "3D000"
)

// CatalogSource narxlar jadvalini Postgres dan o'qiydi.
// Ustun nomlari fayl manbasi bilan bir xil ColumnMapping dan olinadi.
type CatalogSource struct {
	dsn      string
	table    string
	columns  entity.ColumnMapping
	attempts int
	delay    time.Duration
}

// Option CatalogSource sozlamasi
type Option func(*CatalogSource)

// WithRetry ulanish urinishlari soni va oralig'i
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *CatalogSource) {
		if attempts > 0 {
			s.attempts = attempts
		}
		if delay > 0 {
			s.delay = delay
		}
	}
}

// NewCatalogSource yangi Postgres manbasi yaratish.
// columns ning bo'sh maydonlari DefaultColumns bilan to'ldiriladi.
func NewCatalogSource(dsn, table string, columns entity.ColumnMapping, opts ...Option) repository.CatalogSource {
	s := &CatalogSource{
		dsn:      strings.TrimSpace(dsn),
		table:    strings.TrimSpace(table),
		columns:  columns.WithDefaults(),
		attempts: connectAttemptsDefault,
		delay:    connectDelayDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name parolsiz manba nomi (log uchun)
func (s *CatalogSource) Name() string {
	info, ok := parseDSNInfo(s.dsn)
	if !ok {
		return "postgres/" + s.table
	}
	return info.redacted() + "#" + s.table
}

// Rows jadvaldagi barcha qatorlarni o'qiydi
func (s *CatalogSource) Rows(ctx context.Context) ([]entity.CatalogRow, error) {
	db, err := openWithRetry(ctx, s.dsn, s.attempts, s.delay)
	if err != nil {
		return nil, entity.NewLoadError(s.Name(), classify(err))
	}
	defer db.Close()

	query, err := selectQuery(s.table, s.columns)
	if err != nil {
		return nil, entity.NewLoadError(s.Name(), err)
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, entity.NewLoadError(s.Name(), classify(err))
	}
	defer rows.Close()

	var out []entity.CatalogRow
	for rows.Next() {
		var r entity.CatalogRow
		if err := rows.Scan(&r.Name, &r.Price, &r.Brand, &r.Store, &r.Address); err != nil {
			return nil, entity.NewLoadError(s.Name(), fmt.Errorf("%w: %v", entity.ErrMalformedSource, err))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, entity.NewLoadError(s.Name(), classify(err))
	}
	return out, nil
}

// selectQuery narx ustuni numeric bo'lishi mumkin, shuning uchun hammasi text ga aylantiriladi.
// Tartib Scan bilan bir xil: name, price, brand, store, address.
func selectQuery(table string, columns entity.ColumnMapping) (string, error) {
	ident, err := quoteQualified(table)
	if err != nil {
		return "", err
	}
	labels := []string{columns.Name, columns.Price, columns.Brand, columns.Store, columns.Address}
	exprs := make([]string, len(labels))
	for i, label := range labels {
		if strings.TrimSpace(label) == "" {
			return "", fmt.Errorf("%w: empty column label", entity.ErrMalformedSource)
		}
		exprs[i] = fmt.Sprintf("COALESCE(%s::text, '')", pq.QuoteIdentifier(label))
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), ident), nil
}

// quoteQualified "schema.table" yoki "table" ni xavfsiz identifikatorga aylantiradi
func quoteQualified(table string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("%w: catalog table name is empty", entity.ErrMalformedSource)
	}
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: invalid table name %q", entity.ErrMalformedSource, table)
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", fmt.Errorf("%w: invalid table name %q", entity.ErrMalformedSource, table)
		}
		quoted[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(quoted, "."), nil
}

func openWithRetry(ctx context.Context, dsn string, attempts int, delay time.Duration) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				return db, nil
			}
			_ = db.Close()
		}
		lastErr = err
		// baza yo'q bo'lsa qayta urinish foydasiz
		if isDatabaseMissing(err) {
			break
		}
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("postgres connection failed")
	}
	return nil, lastErr
}

// classify Postgres xatosini domen xatosiga bog'laydi
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeInvalidCatalog, codeUndefinedTable:
			return fmt.Errorf("%w: %v", entity.ErrSourceNotFound, err)
		case codeUndefinedColumn:
			return fmt.Errorf("%w: %v", entity.ErrMalformedSource, err)
		}
	}
	if isDatabaseMissing(err) {
		return fmt.Errorf("%w: %v", entity.ErrSourceNotFound, err)
	}
	return err
}

func isDatabaseMissing(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == codeInvalidCatalog {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") && strings.Contains(msg, "database")
}

type dsnInfo struct {
	User   string
	Host   string
	Port   string
	DBName string
}

func parseDSNInfo(dsn string) (dsnInfo, bool) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return dsnInfo{}, false
	}
	if strings.HasPrefix(trimmed, "postgres://") || strings.HasPrefix(trimmed, "postgresql://") {
		u, err := url.Parse(trimmed)
		if err != nil || u.Host == "" {
			return dsnInfo{}, false
		}
		info := dsnInfo{Host: u.Hostname(), Port: u.Port(), DBName: strings.TrimPrefix(u.Path, "/")}
		if u.User != nil {
			info.User = u.User.Username()
		}
		if info.Port == "" {
			info.Port = "5432"
		}
		return info, true
	}

	info := dsnInfo{}
	for _, part := range strings.Fields(trimmed) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		val := strings.Trim(kv[1], `"'`)
		switch strings.ToLower(strings.TrimSpace(kv[0])) {
		case "user", "username":
			info.User = val
		case "host":
			info.Host = val
		case "port":
			info.Port = val
		case "dbname", "database":
			info.DBName = val
		}
	}
	if info.Host == "" && info.User == "" && info.DBName == "" {
		return dsnInfo{}, false
	}
	if info.Port == "" {
		info.Port = "5432"
	}
	return info, true
}

func (d dsnInfo) redacted() string {
	u := url.URL{Scheme: "postgres", Host: net.JoinHostPort(d.Host, d.Port), Path: "/" + d.DBName}
	if d.User != "" {
		u.User = url.User(d.User)
	}
	return u.String()
}
