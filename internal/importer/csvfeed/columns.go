package csvfeed

import (
	"strings"
)

// column lists the header spellings accepted for one field, compared case-insensitively.
type column struct {
	field    string
	aliases  []string
	required bool
}

var columns = []column{
	{field: "id", aliases: []string{"id", "source_id", "sourceid", "ref"}, required: true},
	{field: "title", aliases: []string{"title", "name", "product"}, required: true},
	{field: "description", aliases: []string{"description", "desc"}},
	{field: "price", aliases: []string{"price", "amount"}, required: true},
	{field: "category", aliases: []string{"category"}},
	{field: "image", aliases: []string{"image", "image_url", "imageurl"}},
	{field: "sold", aliases: []string{"sold", "is_sold"}},
	{field: "dateOfSale", aliases: []string{"dateofsale", "date_of_sale", "date of sale", "sale_date", "date"}, required: true},
}

// colIndex maps field names to their index in the row.
type colIndex map[string]int

// matchHeader returns the column index of every known field in row, and
// whether all required fields were found.
func matchHeader(row []string) (colIndex, bool) {
	cols := make(colIndex)

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}

		for _, c := range columns {
			if _, seen := cols[c.field]; seen {
				continue
			}

			for _, alias := range c.aliases {
				if name == alias {
					cols[c.field] = i
					break
				}
			}
		}
	}

	for _, c := range columns {
		if _, ok := cols[c.field]; c.required && !ok {
			return cols, false
		}
	}

	return cols, true
}

// cell safely gets a trimmed field value from a row.
func (c colIndex) cell(row []string, field string) string {
	idx, ok := c[field]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
