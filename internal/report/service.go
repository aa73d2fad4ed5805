package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/holding"
	"github.com/mtlprog/wealthlens/internal/metrics"
)

// Service manages report generation and retrieval.
type Service struct {
	holdings holding.Repository
	repo     Repository
	cache    Cache
	engine   *health.Engine
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the report cache used by Current.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock overrides the clock used for report dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithEngine overrides the default health score engine.
func WithEngine(e *health.Engine) Option {
	return func(s *Service) { s.engine = e }
}

// NewService creates a report Service.
func NewService(holdings holding.Repository, repo Repository, opts ...Option) *Service {
	s := &Service{
		holdings: holdings,
		repo:     repo,
		engine:   health.NewEngine(health.NewDefaultRegistry()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds and stores the report of userID for date.
func (s *Service) Generate(ctx context.Context, userID string, date time.Time) (*Report, error) {
	raw, err := s.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading holdings: %w", err)
	}

	r := Build(userID, raw, s.engine, s.now())
	r.ReportDate = Day(date)
	if err := s.repo.Save(ctx, r); err != nil {
		metrics.ReportsGenerated.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("saving report: %w", err)
	}
	metrics.ReportsGenerated.WithLabelValues("ok").Inc()
	metrics.ObserveScore(r.Health.TotalScore, string(r.Health.Grade))
	return r, nil
}

// Current returns today's report for userID. A cached report is reused as
// long as the user's holdings are unchanged.
func (s *Service) Current(ctx context.Context, userID string) (*Report, error) {
	raw, err := s.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading holdings: %w", err)
	}

	fp := Fingerprint(raw)
	if s.cache != nil && fp != "" {
		if r, ok := s.cache.Get(ctx, userID, fp); ok {
			return r, nil
		}
	}

	r := Build(userID, raw, s.engine, s.now())
	if err := s.repo.Save(ctx, r); err != nil {
		slog.Warn("failed to store current report", "user", userID, "error", err)
	}
	metrics.ObserveScore(r.Health.TotalScore, string(r.Health.Grade))

	if s.cache != nil && fp != "" {
		s.cache.Set(ctx, userID, fp, r)
	}
	return r, nil
}

// GenerateAll generates reports for every user with holdings. Per-user
// failures are logged and skipped; the reports written are returned.
func (s *Service) GenerateAll(ctx context.Context, date time.Time) ([]*Report, error) {
	users, err := s.holdings.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	generated := make([]*Report, 0, len(users))
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		r, err := s.Generate(ctx, userID, date)
		if err != nil {
			if !errors.Is(err, holding.ErrNotFound) {
				slog.Error("failed to generate report", "user", userID, "error", err)
			}
			continue
		}
		generated = append(generated, r)
	}
	return generated, nil
}

// GetLatest retrieves the most recent stored report.
func (s *Service) GetLatest(ctx context.Context, userID string) (*Report, error) {
	return s.repo.GetLatest(ctx, userID)
}

// GetByDate retrieves the stored report for a specific date.
func (s *Service) GetByDate(ctx context.Context, userID string, date time.Time) (*Report, error) {
	return s.repo.GetByDate(ctx, userID, date)
}

// List retrieves recent reports, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Report, error) {
	return s.repo.List(ctx, userID, limit)
}
