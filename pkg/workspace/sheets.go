package workspace

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// Value render modes accepted by ReadRange.
const (
	RenderFormatted = "FORMATTED_VALUE"
	RenderRaw       = "UNFORMATTED_VALUE"
	RenderFormula   = "FORMULA"
)

// Value input modes accepted by the write operations.
const (
	InputUserEntered = "USER_ENTERED"
	InputRaw         = "RAW"
)

// RangeValues is one range/values pair in a batch update.
type RangeValues struct {
	Range  string
	Values [][]any
}

// SheetsService exposes the spreadsheet operations used by command handlers.
type SheetsService struct {
	svc *sheets.Service
}

func NewSheetsService(svc *sheets.Service) *SheetsService {
	return &SheetsService{svc: svc}
}

// Metadata fetches spreadsheet properties and the sheet list.
func (s *SheetsService) Metadata(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error) {
	if spreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	resp, err := s.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching spreadsheet metadata: %w", err)
	}
	return resp, nil
}

// ReadRange reads one range. An empty renderOption defaults to formatted
// values.
func (s *SheetsService) ReadRange(ctx context.Context, spreadsheetID, readRange, renderOption string) ([][]any, error) {
	if spreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	if readRange == "" {
		return nil, ErrMissingRange
	}
	if renderOption == "" {
		renderOption = RenderFormatted
	}
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption(renderOption).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", readRange, err)
	}
	return resp.Values, nil
}

// AppendRow appends a single row after the last row of the given range. An
// empty inputMode defaults to user-entered parsing.
func (s *SheetsService) AppendRow(ctx context.Context, spreadsheetID, appendRange string, row []any, inputMode string) (*sheets.AppendValuesResponse, error) {
	if spreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	if appendRange == "" {
		return nil, ErrMissingRange
	}
	if inputMode == "" {
		inputMode = InputUserEntered
	}
	body := &sheets.ValueRange{Values: [][]any{row}}
	resp, err := s.svc.Spreadsheets.Values.Append(spreadsheetID, appendRange, body).
		ValueInputOption(inputMode).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("appending to %s: %w", appendRange, err)
	}
	return resp, nil
}

// UpdateRange overwrites the given range with values.
func (s *SheetsService) UpdateRange(ctx context.Context, spreadsheetID, updateRange string, values [][]any, inputMode string) (*sheets.UpdateValuesResponse, error) {
	if spreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	if updateRange == "" {
		return nil, ErrMissingRange
	}
	if inputMode == "" {
		inputMode = InputUserEntered
	}
	body := &sheets.ValueRange{Values: values}
	resp, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, updateRange, body).
		ValueInputOption(inputMode).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", updateRange, err)
	}
	return resp, nil
}

// ClearRange clears values in the given range, leaving formatting intact.
func (s *SheetsService) ClearRange(ctx context.Context, spreadsheetID, clearRange string) error {
	if spreadsheetID == "" {
		return ErrMissingSpreadsheetID
	}
	if clearRange == "" {
		return ErrMissingRange
	}
	_, err := s.svc.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clearing %s: %w", clearRange, err)
	}
	return nil
}

// BatchUpdate writes all range/values pairs in one remote call.
func (s *SheetsService) BatchUpdate(ctx context.Context, spreadsheetID string, data []RangeValues, inputMode string) (*sheets.BatchUpdateValuesResponse, error) {
	if spreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	if inputMode == "" {
		inputMode = InputUserEntered
	}
	ranges := make([]*sheets.ValueRange, len(data))
	for i, rv := range data {
		ranges[i] = &sheets.ValueRange{Range: rv.Range, Values: rv.Values}
	}
	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: inputMode,
		Data:             ranges,
	}
	resp, err := s.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("batch updating: %w", err)
	}
	return resp, nil
}

// Create creates a new spreadsheet with one sheet per name in sheetNames.
func (s *SheetsService) Create(ctx context.Context, title string, sheetNames []string) (*sheets.Spreadsheet, error) {
	if title == "" {
		return nil, ErrMissingTitle
	}
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, name := range sheetNames {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}
	resp, err := s.svc.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating spreadsheet: %w", err)
	}
	return resp, nil
}

// ReadAsObjects reads a range and zips each data row against the header row.
func (s *SheetsService) ReadAsObjects(ctx context.Context, spreadsheetID, readRange string) ([]map[string]any, error) {
	rows, err := s.ReadRange(ctx, spreadsheetID, readRange, RenderFormatted)
	if err != nil {
		return nil, err
	}
	return RowsToObjects(rows), nil
}

// RowsToObjects treats the first row as field names and maps each subsequent
// row to a field-name keyed object. Missing trailing cells become nil. Fewer
// than two rows yields an empty result.
func RowsToObjects(rows [][]any) []map[string]any {
	if len(rows) < 2 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = fmt.Sprint(cell)
	}
	objects := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		obj := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(row) {
				obj[name] = row[i]
			} else {
				obj[name] = nil
			}
		}
		objects = append(objects, obj)
	}
	return objects
}
