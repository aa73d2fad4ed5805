package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested report was not found.
var ErrNotFound = errors.New("report not found")

// Repository defines persistent storage for reports.
type Repository interface {
	Save(ctx context.Context, r *Report) error
	GetLatest(ctx context.Context, userID string) (*Report, error)
	GetByDate(ctx context.Context, userID string, date time.Time) (*Report, error)
	List(ctx context.Context, userID string, limit int) ([]Report, error)
}

// PgRepository implements Repository with PostgreSQL. The full report is
// kept as jsonb; one row per user and day.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL report repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, rep *Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO health_reports (id, user_id, report_date, total_score, grade, data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
		 ON CONFLICT (user_id, report_date)
		 DO UPDATE SET id = EXCLUDED.id, total_score = EXCLUDED.total_score, grade = EXCLUDED.grade,
		               data = EXCLUDED.data, created_at = EXCLUDED.created_at`,
		rep.ID, rep.UserID, rep.ReportDate, rep.Health.TotalScore, string(rep.Health.Grade), data, rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

func (r *PgRepository) GetLatest(ctx context.Context, userID string) (*Report, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT data FROM health_reports
		 WHERE user_id = $1
		 ORDER BY report_date DESC
		 LIMIT 1`, userID)
	rep, err := scanReport(row)
	if err != nil {
		return nil, fmt.Errorf("getting latest report: %w", err)
	}
	return rep, nil
}

func (r *PgRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*Report, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT data FROM health_reports
		 WHERE user_id = $1 AND report_date = $2`, userID, Day(date))
	rep, err := scanReport(row)
	if err != nil {
		return nil, fmt.Errorf("getting report by date: %w", err)
	}
	return rep, nil
}

func (r *PgRepository) List(ctx context.Context, userID string, limit int) ([]Report, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT data FROM health_reports
		 WHERE user_id = $1
		 ORDER BY report_date DESC
		 LIMIT $2`, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("listing reports: %w", err)
		}
		reports = append(reports, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}
	return reports, nil
}

func scanReport(row pgx.Row) (*Report, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &rep, nil
}

const (
	DefaultListLimit = 30
	MaxListLimit     = 365
)

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

// MemoryRepository keeps reports in memory, one per user and day.
type MemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]map[time.Time]Report
}

// NewMemoryRepository creates an empty in-memory report repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reports: make(map[string]map[time.Time]Report)}
}

func (m *MemoryRepository) Save(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byDay, ok := m.reports[r.UserID]
	if !ok {
		byDay = make(map[time.Time]Report)
		m.reports[r.UserID] = byDay
	}
	byDay[Day(r.ReportDate)] = *r
	return nil
}

func (m *MemoryRepository) GetLatest(ctx context.Context, userID string) (*Report, error) {
	reports, _ := m.List(ctx, userID, 1)
	if len(reports) == 0 {
		return nil, ErrNotFound
	}
	return &reports[0], nil
}

func (m *MemoryRepository) GetByDate(_ context.Context, userID string, date time.Time) (*Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[userID][Day(date)]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *MemoryRepository) List(_ context.Context, userID string, limit int) ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reports := make([]Report, 0, len(m.reports[userID]))
	for _, r := range m.reports[userID] {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ReportDate.After(reports[j].ReportDate) })
	if limit = clampLimit(limit); len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}
