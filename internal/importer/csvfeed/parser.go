// Package csvfeed parses product transaction feeds exported as CSV.
//
// The header row may appear after any number of preamble lines and may list
// the columns in any order. Comma and semicolon delimiters are both accepted.
package csvfeed

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/salesdash/internal/encoding"
	"github.com/MrJamesThe3rd/salesdash/internal/importer/feed"
	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(head)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, errors.New("no header row found: expected at least id, title, price and dateOfSale columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks ';' when the first line has more semicolons than commas.
func detectDelimiter(head []byte) rune {
	line, _, _ := bytes.Cut(head, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}

	return ','
}

func findHeader(rows [][]string) (colIndex, int, bool) {
	for i, row := range rows {
		if cols, ok := matchHeader(row); ok {
			return cols, i, true
		}
	}

	return nil, 0, false
}

// parseRows converts data rows. headerRowNum is the 0-based index of the first data row (for error messages).
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]product.CreateParams, error) {
	var txs []product.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		if blank(row) {
			continue
		}

		rec := feed.Record{
			ID:          cols.cell(row, "id"),
			Title:       cols.cell(row, "title"),
			Description: cols.cell(row, "description"),
			Price:       cols.cell(row, "price"),
			Category:    cols.cell(row, "category"),
			Image:       cols.cell(row, "image"),
			Sold:        cols.cell(row, "sold"),
			DateOfSale:  cols.cell(row, "dateOfSale"),
		}

		params, err := rec.Params()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		txs = append(txs, params)
	}

	return txs, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
