package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

const reportDateLayout = "2006-01-02"

// ReportLog keeps one spreadsheet row per daily report.
type ReportLog struct {
	table      Table
	sheetRange string
	logger     *zap.Logger
}

// reportHeader labels the columns written by ReportRow.
var reportHeader = []any{
	"Date", "Recettes", "Achats", "Arrivées", "Départs", "Chambres",
	"Occupées", "Taux d'occupation", "Impayés", "Reste à payer", "Recettes du mois",
}

// NewReportLog writes reports to sheetRange, e.g. "Rapports!A:K".
func NewReportLog(table Table, sheetRange string, logger *zap.Logger) *ReportLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportLog{table: table, sheetRange: sheetRange, logger: logger}
}

// EnsureHeader writes the column labels when the sheet is still empty.
func (l *ReportLog) EnsureHeader(ctx context.Context) error {
	rows, err := l.table.ReadRows(ctx, l.sheetRange)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}
	l.logger.Info("writing report sheet header", zap.String("range", l.sheetRange))
	return l.table.AppendRow(ctx, l.sheetRange, reportHeader)
}

// SaveDailyReport appends the report as a new row.
func (l *ReportLog) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	return l.table.AppendRow(ctx, l.sheetRange, ReportRow(report))
}

// ListDailyReports reads every row back and keeps those dated within
// [from, to]. Rows that do not parse, such as a header, are skipped.
func (l *ReportLog) ListDailyReports(ctx context.Context, from, to time.Time) ([]models.DailyReport, error) {
	rows, err := l.table.ReadRows(ctx, l.sheetRange)
	if err != nil {
		return nil, err
	}

	reports := []models.DailyReport{}
	for i, row := range rows {
		report, err := ParseReportRow(row)
		if err != nil {
			l.logger.Debug("skipping report row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		if !from.IsZero() && report.Date.Before(from) {
			continue
		}
		if !to.IsZero() && report.Date.After(to) {
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ReportRow lays a report out in the sheet's eleven columns.
func ReportRow(r models.DailyReport) []any {
	return []any{
		r.Date.Format(reportDateLayout),
		r.Revenue,
		r.Purchases,
		r.Arrivals,
		r.Departures,
		r.RoomsTotal,
		r.RoomsOccupied,
		r.OccupancyRate,
		r.PendingPayments,
		r.OutstandingTotal,
		r.MonthRevenue,
	}
}

// ParseReportRow is the inverse of ReportRow.
func ParseReportRow(row []any) (models.DailyReport, error) {
	var r models.DailyReport
	if len(row) < 11 {
		return r, fmt.Errorf("expected 11 columns, got %d", len(row))
	}

	cell := func(i int) string { return strings.TrimSpace(fmt.Sprint(row[i])) }
	number := func(i int) models.Amount {
		v := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\u00a0' || r == '\u202f' {
				return -1
			}
			return r
		}, cell(i))
		return models.ParseAmount(strings.TrimSuffix(v, "%"))
	}

	date, err := time.Parse(reportDateLayout, cell(0))
	if err != nil {
		return r, fmt.Errorf("parse date %q: %w", cell(0), err)
	}
	r.Date = date

	ints := []*int{&r.Arrivals, &r.Departures, &r.RoomsTotal, &r.RoomsOccupied}
	for i, dst := range ints {
		v, err := strconv.Atoi(cell(3 + i))
		if err != nil {
			return r, fmt.Errorf("parse column %d: %w", 4+i, err)
		}
		*dst = v
	}
	if r.PendingPayments, err = strconv.Atoi(cell(8)); err != nil {
		return r, fmt.Errorf("parse column 9: %w", err)
	}

	r.Revenue = number(1).Float()
	r.Purchases = number(2).Float()
	r.OccupancyRate = number(7).Float()
	r.OutstandingTotal = number(9).Float()
	r.MonthRevenue = number(10).Float()
	return r, nil
}
