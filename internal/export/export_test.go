package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/wealthlens/internal/domain"
	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/report"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleReport(userID string) *report.Report {
	raw := []domain.RawHolding{
		{ID: "eq", Assets: &domain.RawAsset{ID: "a1", Name: "Stock", AssetType: "equity"}, InvestedValue: 400000},
		{ID: "fd", Assets: &domain.RawAsset{ID: "a2", Name: "Deposit", AssetType: "fd"}, InvestedValue: 300000},
		{ID: "epf", Assets: &domain.RawAsset{ID: "a3", Name: "EPF", AssetType: "epf"}, InvestedValue: 300000},
	}
	return report.Build(userID, raw, health.NewEngine(health.NewDefaultRegistry()), fixedNow)
}

type recordingWriter struct {
	got []*report.Report
	err error
}

func (w *recordingWriter) Write(_ context.Context, reports []*report.Report) error {
	w.got = reports
	return w.err
}

func TestBuildSummary(t *testing.T) {
	data := buildSummary([]*report.Report{sampleReport("u1")})

	if len(data) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(data))
	}
	header, row := data[0], data[1]
	if len(header) != len(row) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(row))
	}
	if len(header) != 18 {
		t.Errorf("columns = %d, want 18", len(header))
	}
	if header[5] != "Asset Allocation" {
		t.Errorf("header[5] = %v, want Asset Allocation", header[5])
	}
	if row[0] != "2026-03-01" || row[1] != "u1" {
		t.Errorf("row identity = %v %v", row[0], row[1])
	}
	if row[3] != 70 || row[4] != "Good" {
		t.Errorf("score = %v %v, want 70 Good", row[3], row[4])
	}
	if row[6] != 26 {
		t.Errorf("concentration column = %v, want 26", row[6])
	}
	if row[len(row)-1] != 8.0 {
		t.Errorf("drawdown impact = %v, want 8", row[len(row)-1])
	}
}

func TestBuildPillars(t *testing.T) {
	data := buildPillars([]*report.Report{sampleReport("u1"), sampleReport("u2")})
	if len(data) != 1+2*7 {
		t.Fatalf("rows = %d, want %d", len(data), 1+2*7)
	}
	if data[1][2] != "Asset Allocation" || data[8][1] != "u2" {
		t.Errorf("unexpected layout: %v / %v", data[1], data[8])
	}
}

func TestServiceExportOrdersAndJoinsErrors(t *testing.T) {
	ok := &recordingWriter{}
	failing := &recordingWriter{err: errors.New("quota exceeded")}
	svc := NewService(failing, ok)

	err := svc.Export(context.Background(), []*report.Report{sampleReport("zed"), nil, sampleReport("amy")})
	if err == nil {
		t.Fatal("Export() error = nil, want writer error")
	}
	if len(ok.got) != 2 || ok.got[0].UserID != "amy" || ok.got[1].UserID != "zed" {
		t.Errorf("second writer got %d reports, want amy then zed", len(ok.got))
	}
}

func TestServiceExportEmpty(t *testing.T) {
	w := &recordingWriter{}
	if err := NewService(w).Export(context.Background(), nil); err != nil {
		t.Errorf("Export(nil) error = %v", err)
	}
	if w.got != nil {
		t.Error("writer called for empty export")
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, []*report.Report{sampleReport("u1")}); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != SummarySheet || got[1] != PillarsSheet {
		t.Errorf("sheets = %v, want [SUMMARY PILLARS]", got)
	}
	if v, _ := f.GetCellValue(SummarySheet, "B2"); v != "u1" {
		t.Errorf("SUMMARY!B2 = %q, want u1", v)
	}
	if v, _ := f.GetCellValue(SummarySheet, "D2"); v != "70" {
		t.Errorf("SUMMARY!D2 = %q, want 70", v)
	}
	if v, _ := f.GetCellValue(PillarsSheet, "C1"); v != "Pillar" {
		t.Errorf("PILLARS!C1 = %q, want Pillar", v)
	}
}
