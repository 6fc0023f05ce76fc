package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

// importLockKey serialises concurrent seeds against each other.
const importLockKey int64 = 0x5a1e5d45

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectTransactionColumns.
func scanTransaction(s scanner) (*product.Transaction, error) {
	var tx product.Transaction

	if err := s.Scan(
		&tx.ID, &tx.SourceRef, &tx.Title, &tx.Description, &tx.Price, &tx.Category, &tx.Image,
		&tx.Sold, &tx.DateOfSale, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.source_ref, t.title, t.description, t.price, t.category, t.image,
	t.sold, t.date_of_sale, t.created_at, t.updated_at
`

// monthClause matches the calendar month of the sale in UTC, in any year.
const monthClause = `EXTRACT(MONTH FROM t.date_of_sale AT TIME ZONE 'UTC') = $1`

func (s *Store) GetTransaction(ctx context.Context, sourceRef string) (*product.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM product_transactions t
		WHERE t.source_ref = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, sourceRef))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// buildListWhere returns the WHERE clause and its arguments for filter.
func buildListWhere(filter product.ListFilter) (string, []any) {
	where := ` WHERE ` + monthClause
	args := []any{filter.Month}

	search := strings.TrimSpace(filter.Search)
	if search == "" {
		return where, args
	}

	args = append(args, "%"+escapeLike(search)+"%")
	like := len(args)

	cond := fmt.Sprintf(`t.title ILIKE $%d OR t.description ILIKE $%d`, like, like)

	if price, err := decimal.NewFromString(search); err == nil {
		args = append(args, price)
		cond += fmt.Sprintf(` OR t.price = $%d`, len(args))
	}

	return where + ` AND (` + cond + `)`, args
}

func (s *Store) ListTransactions(ctx context.Context, filter product.ListFilter) ([]*product.Transaction, int, error) {
	where, args := buildListWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_transactions t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	if total == 0 {
		return nil, 0, nil
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM product_transactions t` + where +
		fmt.Sprintf(` ORDER BY t.date_of_sale ASC, t.id ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	args = append(args, filter.PerPage, filter.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*product.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, total, nil
}

func (s *Store) MonthStatistics(ctx context.Context, month int) (*product.Statistics, error) {
	query := `
		SELECT
			COALESCE(SUM(t.price) FILTER (WHERE t.sold), 0),
			COUNT(*) FILTER (WHERE t.sold),
			COUNT(*) FILTER (WHERE NOT t.sold)
		FROM product_transactions t
		WHERE ` + monthClause

	var st product.Statistics
	if err := s.db.QueryRowContext(ctx, query, month).Scan(
		&st.TotalSaleAmount, &st.TotalSoldItems, &st.TotalNotSoldItems,
	); err != nil {
		return nil, fmt.Errorf("computing statistics: %w", err)
	}

	return &st, nil
}

func (s *Store) PriceBucketCounts(ctx context.Context, month int) (map[int]int64, error) {
	query := fmt.Sprintf(`
		SELECT LEAST(GREATEST(CEIL(t.price / 100)::int - 1, 0), %d) AS bucket, COUNT(*)
		FROM product_transactions t
		WHERE %s
		GROUP BY bucket`, len(product.PriceRanges)-1, monthClause)

	rows, err := s.db.QueryContext(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("counting price buckets: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int64, len(product.PriceRanges))

	for rows.Next() {
		var bucket int

		var count int64
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("scanning price bucket: %w", err)
		}

		counts[bucket] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price bucket rows: %w", err)
	}

	return counts, nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (product.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) UpsertTransactions(ctx context.Context, txs []*product.Transaction) (int, error) {
	// xmax is zero only for freshly inserted tuples.
	query := `
		INSERT INTO product_transactions (source_ref, title, description, price, category, image, sold, date_of_sale, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (source_ref) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			image = EXCLUDED.image,
			sold = EXCLUDED.sold,
			date_of_sale = EXCLUDED.date_of_sale,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0)
	`

	inserted := 0

	for _, tx := range txs {
		var isNew bool

		err := itx.tx.QueryRowContext(ctx, query,
			tx.SourceRef,
			tx.Title,
			tx.Description,
			tx.Price,
			tx.Category,
			tx.Image,
			tx.Sold,
			tx.DateOfSale,
		).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt, &isNew)
		if err != nil {
			return 0, fmt.Errorf("upserting transaction %q: %w", tx.SourceRef, err)
		}

		if isNew {
			inserted++
		}
	}

	return inserted, nil
}

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
