// Package holding loads users' raw holdings from storage.
package holding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/wealthlens/internal/domain"
)

// ErrNotFound indicates that the user has no holdings on record.
var ErrNotFound = errors.New("no holdings found")

// Repository defines read access to stored holdings.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.RawHolding, error)
	ListUsers(ctx context.Context) ([]string, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL holdings repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) ListByUser(ctx context.Context, userID string) ([]domain.RawHolding, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT h.id::text, h.invested_value, h.current_value, h.quantity, h.notes,
		        a.id::text, a.name, a.asset_type, a.sector, a.asset_class, a.isin, a.symbol
		 FROM holdings h
		 LEFT JOIN assets a ON a.id = h.asset_id
		 WHERE h.user_id = $1
		 ORDER BY h.created_at, h.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.RawHolding
	for rows.Next() {
		var (
			h                        domain.RawHolding
			invested, current, qty   decimal.NullDecimal
			assetID, name, assetType *string
			sector, assetClass, isin *string
			symbol                   *string
		)
		if err := rows.Scan(&h.ID, &invested, &current, &qty, &h.Notes,
			&assetID, &name, &assetType, &sector, &assetClass, &isin, &symbol); err != nil {
			return nil, fmt.Errorf("scanning holding: %w", err)
		}

		h.InvestedValue = amount(invested)
		h.Quantity = amount(qty)
		if current.Valid {
			h.CurrentValue = domain.AmountPtr(amount(current).Float64())
		}
		if assetID != nil {
			h.Assets = &domain.RawAsset{
				ID:         *assetID,
				Name:       domain.Deref(name),
				AssetType:  domain.Deref(assetType),
				Sector:     sector,
				AssetClass: assetClass,
				ISIN:       isin,
				Symbol:     symbol,
			}
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holdings: %w", err)
	}
	if len(holdings) == 0 {
		return nil, ErrNotFound
	}
	return holdings, nil
}

func (r *PgRepository) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT user_id::text FROM holdings ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func amount(d decimal.NullDecimal) domain.Amount {
	if !d.Valid {
		return 0
	}
	return domain.Amount(d.Decimal.InexactFloat64())
}

// MemoryRepository keeps holdings in memory. It backs the CLI and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	holdings map[string][]domain.RawHolding
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{holdings: make(map[string][]domain.RawHolding)}
}

// Put replaces the holdings stored for userID.
func (r *MemoryRepository) Put(userID string, holdings []domain.RawHolding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holdings[userID] = append([]domain.RawHolding(nil), holdings...)
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]domain.RawHolding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.holdings[userID]
	if !ok || len(h) == 0 {
		return nil, ErrNotFound
	}
	return append([]domain.RawHolding(nil), h...), nil
}

func (r *MemoryRepository) ListUsers(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]string, 0, len(r.holdings))
	for id := range r.holdings {
		users = append(users, id)
	}
	sort.Strings(users)
	return users, nil
}
