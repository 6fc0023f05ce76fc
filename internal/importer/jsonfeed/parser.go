// Package jsonfeed parses product transaction feeds published as a JSON array.
package jsonfeed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	enc "github.com/MrJamesThe3rd/salesdash/internal/encoding"
	"github.com/MrJamesThe3rd/salesdash/internal/importer/feed"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// text accepts any JSON scalar and keeps its textual form.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*t = text(s)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return errors.New("expected a scalar value")
	default:
		*t = text(b)
	}

	return nil
}

type entry struct {
	ID          text `json:"id"`
	Title       text `json:"title"`
	Description text `json:"description"`
	Price       text `json:"price"`
	Category    text `json:"category"`
	Image       text `json:"image"`
	Sold        text `json:"sold"`
	DateOfSale  text `json:"dateOfSale"`
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var entries []entry
	if err := json.NewDecoder(utf8r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	params := make([]product.CreateParams, 0, len(entries))

	for i, e := range entries {
		rec := feed.Record{
			ID:          string(e.ID),
			Title:       string(e.Title),
			Description: string(e.Description),
			Price:       string(e.Price),
			Category:    string(e.Category),
			Image:       string(e.Image),
			Sold:        string(e.Sold),
			DateOfSale:  string(e.DateOfSale),
		}

		cp, err := rec.Params()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		params = append(params, cp)
	}

	return params, nil
}
