// Package export writes generated health reports to spreadsheets.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mtlprog/wealthlens/internal/report"
)

// SheetWriter writes reports to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, reports []*report.Report) error
}

// Service fans reports out to every configured writer.
type Service struct {
	writers []SheetWriter
}

// NewService creates a new export Service.
func NewService(writers ...SheetWriter) *Service {
	return &Service{writers: writers}
}

// Export writes reports ordered by user to all writers. Each writer runs even
// if an earlier one failed. Implements worker.AfterReportsHook.
func (s *Service) Export(ctx context.Context, reports []*report.Report) error {
	ordered := slices.DeleteFunc(slices.Clone(reports), func(r *report.Report) bool { return r == nil })
	if len(ordered) == 0 {
		return nil
	}
	slices.SortStableFunc(ordered, func(a, b *report.Report) int { return strings.Compare(a.UserID, b.UserID) })

	var errs []error
	for i, w := range s.writers {
		if err := w.Write(ctx, ordered); err != nil {
			slog.Warn("export: writer failed", "writer", i, "error", err)
			errs = append(errs, fmt.Errorf("writer %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
