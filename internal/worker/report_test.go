package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mtlprog/wealthlens/internal/report"
)

type mockGenerator struct {
	callCount atomic.Int32
	reports   []*report.Report
	err       error
}

func (m *mockGenerator) GenerateAll(_ context.Context, _ time.Time) ([]*report.Report, error) {
	m.callCount.Add(1)
	return m.reports, m.err
}

type mockHook struct {
	exported atomic.Int32
	err      error
}

func (m *mockHook) Export(_ context.Context, reports []*report.Report) error {
	m.exported.Add(int32(len(reports)))
	return m.err
}

func TestReportWorkerRunsAndShutdown(t *testing.T) {
	gen := &mockGenerator{reports: []*report.Report{{UserID: "u1"}}}
	hook := &mockHook{}
	w := NewReportWorker(gen, 50*time.Millisecond, hook)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	if got := gen.callCount.Load(); got < 2 {
		t.Errorf("call count = %d, want >= 2", got)
	}
	if got := hook.exported.Load(); got < 2 {
		t.Errorf("exported = %d, want >= 2", got)
	}
}

func TestReportWorkerSkipsHookOnError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("db down")}
	hook := &mockHook{}
	w := NewReportWorker(gen, time.Hour, hook)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)

	if got := gen.callCount.Load(); got != 1 {
		t.Errorf("call count = %d, want 1", got)
	}
	if got := hook.exported.Load(); got != 0 {
		t.Errorf("exported = %d, want 0", got)
	}
}

func TestReportWorkerWithoutHook(t *testing.T) {
	gen := &mockGenerator{reports: []*report.Report{{UserID: "u1"}}}
	w := NewReportWorker(gen, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)

	if got := gen.callCount.Load(); got != 1 {
		t.Errorf("call count = %d, want 1", got)
	}
}
