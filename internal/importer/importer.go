package importer

import (
	"io"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

// Format is the serialisation of a seed feed.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]product.CreateParams, error)
}
