// Package export renders dashboard data as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/reporting"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	reservationsSheet = "Réservations"
	purchasesSheet    = "Achats"
	monthlySheet      = "Rapport mensuel"
	displayDate       = "02/01/2006"
)

var monthLabels = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// Workbook wraps an excelize file with a single data sheet.
type Workbook struct {
	f     *excelize.File
	sheet string
}

// Write streams the workbook as XLSX.
func (w *Workbook) Write(out io.Writer) error {
	defer w.f.Close()
	if err := w.f.Write(out); err != nil {
		return fmt.Errorf("write %s workbook: %w", w.sheet, err)
	}
	return nil
}

// File exposes the underlying workbook.
func (w *Workbook) File() *excelize.File { return w.f }

// Sheet is the name of the data sheet.
func (w *Workbook) Sheet() string { return w.sheet }

// Filename builds "<prefix>_20060102_150405.xlsx".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102_150405"))
}

func newWorkbook(sheet string, headers []string) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E7EF"}, Pattern: 1},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", last, style)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	return &Workbook{f: f, sheet: sheet}, nil
}

func (w *Workbook) setRow(row int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	return w.f.SetSheetRow(w.sheet, cell, &values)
}

func formatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(displayDate)
}

// Reservations builds the reservations sheet. Room numbers come from rooms
// when the reservation does not carry one.
func Reservations(reservations []models.Reservation, rooms []models.Room) (*Workbook, error) {
	wb, err := newWorkbook(reservationsSheet, []string{
		"N°", "Date dossier", "Client", "Chambre", "Entrée", "Sortie",
		"Nuits", "Prix unitaire", "Montant total", "Montant payé", "Reste à payer", "Informations",
	})
	if err != nil {
		return nil, err
	}

	roomIdx := models.RoomIndex(rooms)
	total, paid, remainder := models.Zero, models.Zero, models.Zero
	for i, r := range reservations {
		number := r.RoomNumber
		if room, ok := roomIdx[r.RoomID]; ok {
			number = room.Number
		}
		err := wb.setRow(i+2, []any{
			r.ID, formatDate(r.FileDate), r.ClientName, number,
			formatDate(r.CheckIn), formatDate(r.CheckOut), r.Nights,
			r.RoomRate.Float(), r.Total.Float(), r.Paid.Float(), r.Remainder.Float(), r.Notes,
		})
		if err != nil {
			wb.f.Close()
			return nil, fmt.Errorf("write reservation %d: %w", r.ID, err)
		}
		total = total.Add(r.Total)
		paid = paid.Add(r.Paid)
		remainder = remainder.Add(r.Remainder)
	}

	totals := []any{"", "", "Total", "", "", "", "", "", total.Float(), paid.Float(), remainder.Float()}
	if err := wb.setRow(len(reservations)+2, totals); err != nil {
		wb.f.Close()
		return nil, fmt.Errorf("write totals: %w", err)
	}
	return wb, nil
}

// Purchases builds the purchases sheet. Unit labels come from units.
func Purchases(purchases []models.Purchase, units []models.Unit) (*Workbook, error) {
	wb, err := newWorkbook(purchasesSheet, []string{
		"N°", "Date", "Produit", "Quantité", "Unité", "Prix unitaire", "Montant", "Observation",
	})
	if err != nil {
		return nil, err
	}

	labels := make(map[int64]string, len(units))
	for _, u := range units {
		labels[u.ID] = u.Label
	}

	sum := models.Zero
	for i, p := range purchases {
		unit := labels[p.UnitID]
		if unit == "" && p.Unit != nil {
			unit = p.Unit.Label
		}
		amount := p.Total()
		err := wb.setRow(i+2, []any{
			p.ID, formatDate(p.Date), p.Product, p.Quantity.Float(), unit,
			p.UnitPrice.Float(), amount.Float(), p.Observation,
		})
		if err != nil {
			wb.f.Close()
			return nil, fmt.Errorf("write purchase %d: %w", p.ID, err)
		}
		sum = sum.Add(amount)
	}

	if err := wb.setRow(len(purchases)+2, []any{"", "", "Total", "", "", "", sum.Float()}); err != nil {
		wb.f.Close()
		return nil, fmt.Errorf("write totals: %w", err)
	}
	return wb, nil
}

// Monthly builds the twelve-month revenue/purchases/net report.
func Monthly(totals reporting.MonthlyTotals) (*Workbook, error) {
	wb, err := newWorkbook(monthlySheet, []string{"Mois", "Recettes", "Achats", "Solde"})
	if err != nil {
		return nil, err
	}

	revenue, purchases := models.Zero, models.Zero
	for m := 0; m < 12; m++ {
		net := totals.Revenue[m].Sub(totals.Purchases[m])
		label := fmt.Sprintf("%s %d", monthLabels[m], totals.Year)
		if err := wb.setRow(m+2, []any{label, totals.Revenue[m].Float(), totals.Purchases[m].Float(), net.Float()}); err != nil {
			wb.f.Close()
			return nil, fmt.Errorf("write month %d: %w", m+1, err)
		}
		revenue = revenue.Add(totals.Revenue[m])
		purchases = purchases.Add(totals.Purchases[m])
	}

	row := []any{"Total", revenue.Float(), purchases.Float(), revenue.Sub(purchases).Float()}
	if err := wb.setRow(14, row); err != nil {
		wb.f.Close()
		return nil, fmt.Errorf("write totals: %w", err)
	}
	return wb, nil
}
