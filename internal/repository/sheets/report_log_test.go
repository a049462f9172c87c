package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

type memorySheet struct {
	rows [][]any
}

func (m *memorySheet) AppendRow(ctx context.Context, sheetRange string, values []any) error {
	m.rows = append(m.rows, values)
	return nil
}

func (m *memorySheet) ReadRows(ctx context.Context, sheetRange string) ([][]any, error) {
	return m.rows, nil
}

func TestReportLogRoundTrip(t *testing.T) {
	sheet := &memorySheet{rows: [][]any{
		{"Date", "Recettes", "Achats", "Arrivées", "Départs", "Chambres", "Occupées", "Taux", "Impayés", "Reste", "Mois"},
	}}
	log := NewReportLog(sheet, "Rapports!A:K", nil)
	ctx := context.Background()

	for day := 24; day <= 26; day++ {
		err := log.SaveDailyReport(ctx, models.DailyReport{
			Date:          time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC),
			Revenue:       160,
			Arrivals:      1,
			RoomsTotal:    4,
			RoomsOccupied: 2,
			OccupancyRate: 50,
			MonthRevenue:  150160,
		})
		if err != nil {
			t.Fatalf("SaveDailyReport: %v", err)
		}
	}

	from := time.Date(2026, time.January, 25, 0, 0, 0, 0, time.UTC)
	got, err := log.ListDailyReports(ctx, from, time.Time{})
	if err != nil {
		t.Fatalf("ListDailyReports: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("reports = %+v", got)
	}
	if got[0].Date.Day() != 25 || got[0].OccupancyRate != 50 || got[0].MonthRevenue != 150160 {
		t.Errorf("first report = %+v", got[0])
	}
}

func TestParseReportRowFormattedValues(t *testing.T) {
	row := []any{"2026-01-26", "150 000", "60", "1", "0", "4", "2", "50,00%", "2", "360", "150160"}
	got, err := ParseReportRow(row)
	if err != nil {
		t.Fatalf("ParseReportRow: %v", err)
	}
	if got.Revenue != 150000 || got.OccupancyRate != 50 || got.PendingPayments != 2 {
		t.Errorf("report = %+v", got)
	}
	if _, err := ParseReportRow(row[:5]); err == nil {
		t.Error("short row should fail")
	}
}

func TestEnsureHeaderOnlyOnEmptySheet(t *testing.T) {
	sheet := &memorySheet{}
	log := NewReportLog(sheet, "Rapports!A:K", nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := log.EnsureHeader(ctx); err != nil {
			t.Fatalf("EnsureHeader: %v", err)
		}
	}
	if len(sheet.rows) != 1 || sheet.rows[0][0] != "Date" {
		t.Fatalf("rows = %v", sheet.rows)
	}
	if _, err := ParseReportRow(sheet.rows[0]); err == nil {
		t.Error("header row should not parse as a report")
	}
}
