package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

type specLinkRecord struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LoadSpecLinks brend bo'yicha guruhlangan JSON ni tekis ro'yxatga aylantiradi:
//
//	{"Samsung": [{"name": "Galaxy S23", "url": "https://..."}], "Apple": [...]}
//
// Guruhlar fayldagi tartibda o'qiladi; takroriy guruh kaliti oldingisini almashtiradi.
func LoadSpecLinks(path string) ([]entity.SpecLink, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, entity.NewLoadError(path, entity.ErrSourceNotFound)
		}
		return nil, entity.NewLoadError(path, err)
	}
	links, err := ParseSpecLinks(data)
	if err != nil {
		return nil, entity.NewLoadError(path, err)
	}
	return links, nil
}

// ParseSpecLinks flattens the nested group -> records document in file order.
func ParseSpecLinks(data []byte) ([]entity.SpecLink, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var (
		order  []string
		groups = make(map[string][]specLinkRecord)
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", entity.ErrMalformedSource, tok)
		}
		var records []specLinkRecord
		if err := dec.Decode(&records); err != nil {
			return nil, malformed(err)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = records
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after spec links object", entity.ErrMalformedSource)
	}

	var links []entity.SpecLink
	for _, k := range order {
		for _, rec := range groups[k] {
			if rec.Name == "" {
				continue
			}
			links = append(links, entity.SpecLink{Name: rec.Name, URL: rec.URL})
		}
	}
	return links, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return malformed(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", entity.ErrMalformedSource, want, tok)
	}
	return nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", entity.ErrMalformedSource, err)
}
