package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/mtlprog/wealthlens/internal/report"
)

// ReportGenerator defines the interface for regenerating all user reports.
type ReportGenerator interface {
	GenerateAll(ctx context.Context, date time.Time) ([]*report.Report, error)
}

// AfterReportsHook is called after each successful generation round.
type AfterReportsHook interface {
	Export(ctx context.Context, reports []*report.Report) error
}

// ReportWorker periodically regenerates health reports for every user.
type ReportWorker struct {
	generator ReportGenerator
	interval  time.Duration
	hook      AfterReportsHook // optional
}

// NewReportWorker creates a new ReportWorker with an optional post-generation hook.
func NewReportWorker(generator ReportGenerator, interval time.Duration, hook AfterReportsHook) *ReportWorker {
	return &ReportWorker{
		generator: generator,
		interval:  interval,
		hook:      hook,
	}
}

func (w *ReportWorker) runHook(ctx context.Context, reports []*report.Report) {
	if w.hook == nil || len(reports) == 0 {
		return
	}
	if err := w.hook.Export(ctx, reports); err != nil {
		slog.Error("ReportWorker: export hook failed", "error", err)
	} else {
		slog.Info("ReportWorker: export hook completed", "reports", len(reports))
	}
}

func (w *ReportWorker) generate(ctx context.Context, phase string) {
	reports, err := w.generator.GenerateAll(ctx, report.Day(time.Now()))
	if err != nil {
		slog.Error("ReportWorker: "+phase+" failed", "error", err)
		return
	}
	slog.Info("ReportWorker: "+phase+" completed", "reports", len(reports))
	w.runHook(ctx, reports)
}

// Run starts the report worker loop. It blocks until the context is cancelled.
func (w *ReportWorker) Run(ctx context.Context) {
	slog.Info("ReportWorker: starting", "interval", w.interval)

	// Generate immediately on startup
	w.generate(ctx, "initial generation")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ReportWorker: shutting down")
			return
		case <-ticker.C:
			w.generate(ctx, "generation")
		}
	}
}
