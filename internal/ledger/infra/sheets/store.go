package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/keisys/teppan-register/internal/ledger/domain"
)

// Store appends and reads ledger rows on a Google Sheets worksheet, the
// stall's shared source of truth. The worksheet must exist and carry
// the header row; provisioning it is an ops task, not this code's.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func New(ctx context.Context, credsFile, spreadsheetID, sheetName string) (*Store, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: build client: %w", err)
	}

	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func (s *Store) Append(ctx context.Context, values []string) error {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName, &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}

func (s *Store) ReadAll(ctx context.Context) (domain.Table, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName).
		Context(ctx).
		Do()
	if err != nil {
		return domain.Table{}, fmt.Errorf("sheets: read values: %w", err)
	}

	if len(resp.Values) == 0 {
		return domain.Table{}, nil
	}

	t := domain.Table{
		Header: toStrings(resp.Values[0]),
		Rows:   make([][]string, 0, len(resp.Values)-1),
	}
	for _, raw := range resp.Values[1:] {
		t.Rows = append(t.Rows, toStrings(raw))
	}
	return t, nil
}

func toStrings(cells []any) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprint(c)
	}
	return out
}
