package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=source.go -destination=source_mock.go -package=dashboard
type Source interface {
	FetchTransactionsPage(ctx context.Context, q Query) (*Page, error)
	// FetchStatistics returns nil when the server reported nothing for the month.
	FetchStatistics(ctx context.Context, month int) (*Statistics, error)
	FetchHistogram(ctx context.Context, month int) ([]Bucket, error)
}

type Transaction struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	Sold        bool            `json:"sold"`
	DateOfSale  time.Time       `json:"dateOfSale"`
}

type Page struct {
	Items      []Transaction `json:"items"`
	TotalPages int           `json:"totalPages"`
}

type Statistics struct {
	TotalSaleAmount   decimal.Decimal `json:"totalSaleAmount"`
	TotalSoldItems    int64           `json:"totalSoldItems"`
	TotalNotSoldItems int64           `json:"totalNotSoldItems"`
}

type Bucket struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// Data is everything fetched for one state. Zero values stand in for failed fetches.
type Data struct {
	Transactions []Transaction
	TotalPages   int
	Statistics   *Statistics
	Histogram    []Bucket
}
