package product

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdash/internal/cache"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	GetTransaction(ctx context.Context, sourceRef string) (*Transaction, error)
	// ListTransactions returns the requested page and the total number of matches.
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, int, error)
	MonthStatistics(ctx context.Context, month int) (*Statistics, error)
	// PriceBucketCounts returns counts keyed by PriceRanges index. Empty buckets may be omitted.
	PriceBucketCounts(ctx context.Context, month int) (map[int]int64, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	// UpsertTransactions inserts or updates by SourceRef and reports how many rows were new.
	UpsertTransactions(ctx context.Context, txs []*Transaction) (int, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo  Repository
	stats *cache.LRU[int, Statistics]
	hist  *cache.LRU[int, []Bucket]

	// epoch advances on every committed import. A read started under an older
	// epoch must not repopulate the caches.
	mu    sync.Mutex
	epoch uint64
}

func NewService(repo Repository, cacheSize int, cacheTTL time.Duration) *Service {
	return &Service{
		repo:  repo,
		stats: cache.NewLRU[int, Statistics](cacheSize, cacheTTL),
		hist:  cache.NewLRU[int, []Bucket](cacheSize, cacheTTL),
	}
}

type CreateParams struct {
	SourceRef   string
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string
	Sold        bool
	DateOfSale  time.Time
}

type ListFilter struct {
	Search  string
	Month   int
	Page    int
	PerPage int
}

// Normalize clamps paging to sane bounds.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}

	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}

	return f
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

func (s *Service) Get(ctx context.Context, sourceRef string) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, sourceRef)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*Page, error) {
	if !validMonth(filter.Month) {
		return nil, ErrInvalidMonth
	}

	filter = filter.Normalize()

	items, total, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	if items == nil {
		items = []*Transaction{}
	}

	return &Page{
		Items:      items,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalItems: total,
		TotalPages: (total + filter.PerPage - 1) / filter.PerPage,
	}, nil
}

func (s *Service) Statistics(ctx context.Context, month int) (*Statistics, error) {
	if !validMonth(month) {
		return nil, ErrInvalidMonth
	}

	if st, ok := s.stats.Get(month); ok {
		return &st, nil
	}

	epoch := s.currentEpoch()

	st, err := s.repo.MonthStatistics(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("month statistics: %w", err)
	}

	s.storeIfCurrent(epoch, func() { s.stats.Set(month, *st) })

	return st, nil
}

func (s *Service) PriceHistogram(ctx context.Context, month int) ([]Bucket, error) {
	if !validMonth(month) {
		return nil, ErrInvalidMonth
	}

	if buckets, ok := s.hist.Get(month); ok {
		return append([]Bucket(nil), buckets...), nil
	}

	epoch := s.currentEpoch()

	counts, err := s.repo.PriceBucketCounts(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("price bucket counts: %w", err)
	}

	buckets := histogram(counts)
	s.storeIfCurrent(epoch, func() { s.hist.Set(month, buckets) })

	return append([]Bucket(nil), buckets...), nil
}

func (s *Service) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.epoch
}

func (s *Service) storeIfCurrent(epoch uint64, store func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch == epoch {
		store()
	}
}

func (s *Service) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.stats.Purge()
	s.hist.Purge()
}

type ImportResult struct {
	Inserted int
	Updated  int
}

// Import upserts params in a single database transaction and drops cached aggregates.
func (s *Service) Import(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	inserted, err := itx.UpsertTransactions(ctx, paramsToTransactions(params))
	if err != nil {
		return nil, fmt.Errorf("upsert transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	s.invalidate()

	return &ImportResult{Inserted: inserted, Updated: len(params) - inserted}, nil
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			SourceRef:   p.SourceRef,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
			Sold:        p.Sold,
			DateOfSale:  p.DateOfSale,
		}
	}

	return txs
}
