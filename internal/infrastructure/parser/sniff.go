package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

type fileFormat int

const (
	formatXLSX fileFormat = iota + 1
	formatCSV
)

var (
	// xlsx zip arxiv: PK..
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	// eski .xls (OLE2), excelize o'qimaydi
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// sniffFormat faylning birinchi 512 baytiga qarab formatni aniqlaydi.
// Kengaytma faqat matnli faylni .xlsx deb nomlanganini ushlash uchun ishlatiladi.
func sniffFormat(path string) (fileFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}
	buf = buf[:n]

	switch {
	case bytes.HasPrefix(buf, zipMagic):
		return formatXLSX, nil
	case bytes.HasPrefix(buf, oleMagic):
		return 0, fmt.Errorf("%w: legacy .xls workbook, save it as .xlsx", entity.ErrMalformedSource)
	case isLikelyText(buf):
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			return 0, fmt.Errorf("%w: %s is text, not a workbook", entity.ErrMalformedSource, filepath.Base(path))
		}
		return formatCSV, nil
	}
	return 0, fmt.Errorf("%w: not an Excel or CSV file", entity.ErrMalformedSource)
}

// isLikelyText UTF-8 matn (arabcha ham) bo'lsa true; NUL bayt binary belgisi
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	total, printable := 0, 0
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		buf = buf[size:]
		if r == 0 {
			return false
		}
		if r == utf8.RuneError && size == 1 && len(buf) < utf8.UTFMax {
			// 512 bayt chegarasida kesilgan rune
			break
		}
		total++
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' || r == '\ufeff' {
			printable++
		}
	}
	return total > 0 && float64(printable)/float64(total) >= 0.75
}
