// Package feed holds the format-independent part of parsing seed feeds.
package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

// Record is one raw feed entry before validation. Every field is kept as text.
type Record struct {
	ID          string
	Title       string
	Description string
	Price       string
	Category    string
	Image       string
	Sold        string
	DateOfSale  string
}

// Params validates r and converts it to creation parameters.
func (r Record) Params() (product.CreateParams, error) {
	ref := strings.TrimSpace(r.ID)
	if ref == "" {
		return product.CreateParams{}, errors.New("missing id")
	}

	title := strings.TrimSpace(r.Title)
	if title == "" {
		return product.CreateParams{}, errors.New("missing title")
	}

	price, err := ParsePrice(r.Price)
	if err != nil {
		return product.CreateParams{}, fmt.Errorf("price: %w", err)
	}

	sold, err := ParseBool(r.Sold)
	if err != nil {
		return product.CreateParams{}, fmt.Errorf("sold: %w", err)
	}

	date, err := ParseDate(r.DateOfSale)
	if err != nil {
		return product.CreateParams{}, fmt.Errorf("dateOfSale: %w", err)
	}

	return product.CreateParams{
		SourceRef:   ref,
		Title:       title,
		Description: strings.TrimSpace(r.Description),
		Price:       price,
		Category:    strings.TrimSpace(r.Category),
		Image:       strings.TrimSpace(r.Image),
		Sold:        sold,
		DateOfSale:  date,
	}, nil
}

// ParsePrice accepts "1234.56", "1,234.56" and European "1.234,56".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Decimal{}, errors.New("empty")
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	clean := s

	switch {
	case lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case lastComma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}

	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %q", s)
	}

	return d, nil
}

// ParseBool treats a blank value as false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0", "no", "n":
		return false, nil
	case "true", "1", "yes", "y":
		return true, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate reads ISO 8601 timestamps. Values without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
