package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/wealthlens/internal/report"
)

// ExcelWriter implements SheetWriter by saving an XLSX workbook to a file.
type ExcelWriter struct {
	path string
}

// NewExcelWriter creates an ExcelWriter that saves to path.
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

func (w *ExcelWriter) Write(_ context.Context, reports []*report.Report) error {
	f, err := workbook(reports)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

// WriteXLSX streams the workbook for reports to out.
func WriteXLSX(out io.Writer, reports []*report.Report) error {
	f, err := workbook(reports)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func workbook(reports []*report.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(PillarsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating %s sheet: %w", PillarsSheet, err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9EAD3"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for _, sheet := range []struct {
		name string
		data [][]any
	}{
		{SummarySheet, buildSummary(reports)},
		{PillarsSheet, buildPillars(reports)},
	} {
		if err := writeSheet(f, sheet.name, sheet.data, header); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, name string, data [][]any, headerStyle int) error {
	for i, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", name, i+1, err)
		}
	}
	if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", name, err)
	}
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
