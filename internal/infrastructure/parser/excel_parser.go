package parser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
	"github.com/yourusername/phone-price-bot/internal/domain/repository"
)

// ExcelParser narxlar faylini (xlsx yoki csv) xom qatorlarga aylantiradi
type ExcelParser struct {
	columns entity.ColumnMapping
}

// NewExcelParser yangi parser yaratish; bo'sh sarlavhalar default bilan to'ldiriladi
func NewExcelParser(columns entity.ColumnMapping) *ExcelParser {
	return &ExcelParser{columns: columns.WithDefaults()}
}

// ParseFile fayl mazmuniga qarab xlsx yoki csv o'qiydi.
// Xatolar *entity.LoadError bo'lib qaytadi.
func (p *ExcelParser) ParseFile(path string) ([]entity.CatalogRow, error) {
	format, err := sniffFormat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, entity.NewLoadError(path, entity.ErrSourceNotFound)
		}
		return nil, entity.NewLoadError(path, err)
	}

	var table [][]string
	if format == formatCSV {
		table, err = readCSV(path)
	} else {
		table, err = readXLSX(path)
	}
	if err != nil {
		return nil, entity.NewLoadError(path, fmt.Errorf("%w: %v", entity.ErrMalformedSource, err))
	}

	rows, err := p.mapRows(table)
	if err != nil {
		return nil, entity.NewLoadError(path, err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var table [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table = append(table, record)
	}
	return table, nil
}

type columnIndex struct {
	name, price, brand, store, address int
}

func headerKey(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func (p *ExcelParser) locateColumns(header []string) (columnIndex, error) {
	idx := columnIndex{name: -1, price: -1, brand: -1, store: -1, address: -1}
	want := map[string]*int{
		headerKey(p.columns.Name):    &idx.name,
		headerKey(p.columns.Price):   &idx.price,
		headerKey(p.columns.Brand):   &idx.brand,
		headerKey(p.columns.Store):   &idx.store,
		headerKey(p.columns.Address): &idx.address,
	}
	for i, cell := range header {
		if target, ok := want[headerKey(cell)]; ok && *target < 0 {
			*target = i
		}
	}
	if idx.name < 0 || idx.price < 0 {
		return idx, fmt.Errorf("%w: header must contain %q and %q columns", entity.ErrMalformedSource, p.columns.Name, p.columns.Price)
	}
	return idx, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// mapRows birinchi bo'sh bo'lmagan qatorni sarlavha deb oladi
func (p *ExcelParser) mapRows(table [][]string) ([]entity.CatalogRow, error) {
	start := 0
	for start < len(table) && isBlankRow(table[start]) {
		start++
	}
	if start == len(table) {
		return nil, fmt.Errorf("%w: no header row", entity.ErrMalformedSource)
	}
	idx, err := p.locateColumns(table[start])
	if err != nil {
		return nil, err
	}

	rows := make([]entity.CatalogRow, 0, len(table)-start-1)
	for _, record := range table[start+1:] {
		if isBlankRow(record) {
			continue
		}
		rows = append(rows, entity.CatalogRow{
			Name:    cellAt(record, idx.name),
			Price:   cellAt(record, idx.price),
			Brand:   cellAt(record, idx.brand),
			Store:   cellAt(record, idx.store),
			Address: cellAt(record, idx.address),
		})
	}
	return rows, nil
}

// FileSource fayldan o'qiydigan CatalogSource
type FileSource struct {
	path   string
	parser *ExcelParser
}

// NewFileSource returns a catalog source backed by an xlsx or csv file.
func NewFileSource(path string, columns entity.ColumnMapping) repository.CatalogSource {
	return &FileSource{path: path, parser: NewExcelParser(columns)}
}

func (s *FileSource) Rows(ctx context.Context) ([]entity.CatalogRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseFile(s.path)
}

func (s *FileSource) Name() string { return s.path }
