package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPrice narx so'rovi songa aylanmadi (foydalanuvchi xatosi)
	ErrInvalidPrice = errors.New("invalid price")

	// ErrSourceNotFound manba fayli topilmadi
	ErrSourceNotFound = errors.New("source not found")

	// ErrMalformedSource manba fayli o'qib bo'lmaydigan formatda
	ErrMalformedSource = errors.New("malformed source")
)

// LoadError katalog yoki spec-link manbasini yuklashdagi xato.
// Ishga tushirishda fatal: qisman katalog bilan ishlanmaydi.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError wraps err for the given source path or DSN label.
func NewLoadError(source string, err error) error {
	if err == nil {
		return nil
	}
	return &LoadError{Source: source, Err: err}
}
