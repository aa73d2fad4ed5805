package export

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/mtlprog/wealthlens/internal/report"
)

// SheetsWriter implements SheetWriter using the Google Sheets API. Rows are
// appended so the sheets keep the full report history.
type SheetsWriter struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsWriter creates a SheetsWriter authenticated with a service account JSON.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsJSON string) (*SheetsWriter, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsWriter{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Write ensures the SUMMARY and PILLARS sheets exist, writes their headers
// when empty, then appends one batch of rows to each.
func (w *SheetsWriter) Write(ctx context.Context, reports []*report.Report) error {
	ids, err := w.ensureSheets(ctx, SummarySheet, PillarsSheet)
	if err != nil {
		return err
	}

	for _, sheet := range []struct {
		name string
		data [][]any
	}{
		{SummarySheet, buildSummary(reports)},
		{PillarsSheet, buildPillars(reports)},
	} {
		if err := w.appendRows(ctx, sheet.name, ids[sheet.name], sheet.data); err != nil {
			return err
		}
	}
	return nil
}

// appendRows writes data[0] as the header if the sheet is empty, then
// appends data[1:].
func (w *SheetsWriter) appendRows(ctx context.Context, name string, sheetID int64, data [][]any) error {
	existing, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, name+"!A1:A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading %s header: %w", name, err)
	}

	if len(existing.Values) == 0 {
		_, err = w.svc.Spreadsheets.Values.Update(
			w.spreadsheetID,
			name+"!A1",
			&sheets.ValueRange{Values: data[:1]},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("writing %s header: %w", name, err)
		}
		if err := w.formatHeader(ctx, sheetID, len(data[0])); err != nil {
			return fmt.Errorf("formatting %s header: %w", name, err)
		}
	}

	if len(data) < 2 {
		return nil
	}
	_, err = w.svc.Spreadsheets.Values.Append(
		w.spreadsheetID,
		name+"!A:A",
		&sheets.ValueRange{Values: data[1:]},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending %s rows: %w", name, err)
	}
	return nil
}

// formatHeader makes row 1 bold on a light-green background and freezes it.
func (w *SheetsWriter) formatHeader(ctx context.Context, sheetID int64, cols int) error {
	// #D9EAD3
	lightGreen := &sheets.Color{Red: 0.851, Green: 0.918, Blue: 0.827}

	reqs := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(cols),
				},
				Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor:     lightGreen,
					TextFormat:          &sheets.TextFormat{Bold: true},
					HorizontalAlignment: "CENTER",
				}},
				Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	_, err := w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: reqs},
	).Context(ctx).Do()
	return err
}

// ensureSheets creates any of the named sheets that do not already exist and
// returns the sheet ID of each.
func (w *SheetsWriter) ensureSheets(ctx context.Context, names ...string) (map[string]int64, error) {
	spreadsheet, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("getting spreadsheet metadata: %w", err)
	}

	ids := make(map[string]int64, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		ids[s.Properties.Title] = s.Properties.SheetId
	}

	var requests []*sheets.Request
	for _, name := range names {
		if _, ok := ids[name]; !ok {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: name},
				},
			})
		}
	}

	if len(requests) == 0 {
		return ids, nil
	}

	resp, err := w.svc.Spreadsheets.BatchUpdate(
		w.spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests},
	).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating sheets: %w", err)
	}
	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			ids[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
		}
	}

	return ids, nil
}
