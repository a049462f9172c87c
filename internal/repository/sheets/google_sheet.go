package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/hotel-admin/internal/config"
)

var errEmptyRange = errors.New("sheet range must not be empty")

// Table is the row-level access ReportLog needs from a spreadsheet.
type Table interface {
	AppendRow(ctx context.Context, sheetRange string, values []any) error
	ReadRows(ctx context.Context, sheetRange string) ([][]any, error)
}

// GoogleSheet is a Table backed by one spreadsheet of the Sheets API.
type GoogleSheet struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheet authenticates with the service account file from cfg.
func NewGoogleSheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	return &GoogleSheet{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRow adds values after the last non-empty row of sheetRange.
func (g *GoogleSheet) AppendRow(ctx context.Context, sheetRange string, values []any) error {
	if sheetRange == "" {
		return errEmptyRange
	}

	body := &sheetsapi.ValueRange{MajorDimension: "ROWS", Values: [][]any{values}}
	resp, err := g.values.Append(g.spreadsheetID, sheetRange, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheetRange, err)
	}

	updated := ""
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}
	g.logger.Debug("sheet row appended", zap.String("range", sheetRange), zap.String("updated", updated))
	return nil
}

// ReadRows returns the formatted cell values of sheetRange, row by row.
func (g *GoogleSheet) ReadRows(ctx context.Context, sheetRange string) ([][]any, error) {
	if sheetRange == "" {
		return nil, errEmptyRange
	}

	resp, err := g.values.Get(g.spreadsheetID, sheetRange).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}
