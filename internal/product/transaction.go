package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a product listing together with its sale outcome.
type Transaction struct {
	ID          uuid.UUID
	SourceRef   string // Identifier in the seed feed, unique
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string
	Sold        bool
	DateOfSale  time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Page is one slice of a filtered transaction listing.
type Page struct {
	Items      []*Transaction
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// Statistics summarises the sales of a single calendar month.
type Statistics struct {
	TotalSaleAmount   decimal.Decimal
	TotalSoldItems    int64
	TotalNotSoldItems int64
}

// Bucket is one bar of the price histogram.
type Bucket struct {
	Range string
	Count int64
}
