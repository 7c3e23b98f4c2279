package workspace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type recordedRequest struct {
	path  string
	query url.Values
}

// newFakeSheets points a real sheets client at an httptest backend that
// records the last request and answers with an empty JSON object.
func newFakeSheets(t *testing.T) (*SheetsService, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.path = r.URL.Path
		recorded.query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)
	return NewSheetsService(svc), recorded
}

func TestAppendRow_DefaultInputMode(t *testing.T) {
	svc, recorded := newFakeSheets(t)

	_, err := svc.AppendRow(context.Background(), "sheet-1", "A:C", []any{"x", "y"}, "")
	require.NoError(t, err)
	require.Equal(t, InputUserEntered, recorded.query.Get("valueInputOption"))
}

func TestAppendRow_ExplicitInputModeForwarded(t *testing.T) {
	svc, recorded := newFakeSheets(t)

	_, err := svc.AppendRow(context.Background(), "sheet-1", "A:C", []any{"x"}, InputRaw)
	require.NoError(t, err)
	require.Equal(t, InputRaw, recorded.query.Get("valueInputOption"))
}

func TestReadRange_DefaultRenderOption(t *testing.T) {
	svc, recorded := newFakeSheets(t)

	_, err := svc.ReadRange(context.Background(), "sheet-1", "A1:B2", "")
	require.NoError(t, err)
	require.Equal(t, RenderFormatted, recorded.query.Get("valueRenderOption"))

	_, err = svc.ReadRange(context.Background(), "sheet-1", "A1:B2", RenderFormula)
	require.NoError(t, err)
	require.Equal(t, RenderFormula, recorded.query.Get("valueRenderOption"))
}

func TestSheets_MissingIdentifiers(t *testing.T) {
	svc, recorded := newFakeSheets(t)
	ctx := context.Background()

	_, err := svc.ReadRange(ctx, "", "A1:B2", "")
	require.ErrorIs(t, err, ErrMissingSpreadsheetID)
	_, err = svc.ReadRange(ctx, "sheet-1", "", "")
	require.ErrorIs(t, err, ErrMissingRange)
	_, err = svc.AppendRow(ctx, "sheet-1", "", []any{"x"}, "")
	require.ErrorIs(t, err, ErrMissingRange)
	err = svc.ClearRange(ctx, "", "A1")
	require.ErrorIs(t, err, ErrMissingSpreadsheetID)
	_, err = svc.Create(ctx, "", nil)
	require.ErrorIs(t, err, ErrMissingTitle)

	// Validation failures never reach the remote service.
	require.Empty(t, recorded.path)
}

func TestRowsToObjects(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want []map[string]any
	}{
		{
			name: "no rows",
			rows: nil,
			want: nil,
		},
		{
			name: "header only",
			rows: [][]any{{"a", "b"}},
			want: nil,
		},
		{
			name: "missing trailing cell becomes nil",
			rows: [][]any{{"a", "b"}, {"1"}},
			want: []map[string]any{{"a": "1", "b": nil}},
		},
		{
			name: "full rows",
			rows: [][]any{
				{"name", "qty"},
				{"bolt", "4"},
				{"nut", "9"},
			},
			want: []map[string]any{
				{"name": "bolt", "qty": "4"},
				{"name": "nut", "qty": "9"},
			},
		},
		{
			name: "extra cells beyond header are dropped",
			rows: [][]any{{"a"}, {"1", "2"}},
			want: []map[string]any{{"a": "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RowsToObjects(tt.rows)
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}
