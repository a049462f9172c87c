package reporting

import (
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// DailyTotals are the figures for a single reference day.
type DailyTotals struct {
	Date       models.Date   `json:"date"`
	Revenue    models.Amount `json:"revenue"`
	Purchases  models.Amount `json:"purchases"`
	Arrivals   int           `json:"arrivals"`
	Departures int           `json:"departures"`
}

// MonthlyTotals holds one slot per calendar month of Year, January first.
type MonthlyTotals struct {
	Year      int               `json:"year"`
	Revenue   [12]models.Amount `json:"revenue"`
	Purchases [12]models.Amount `json:"purchases"`
}

// TotalRevenue sums the twelve revenue slots.
func (m MonthlyTotals) TotalRevenue() models.Amount {
	total := models.Zero
	for _, v := range m.Revenue {
		total = total.Add(v)
	}
	return total
}

// OccupancyStats describes how many rooms are taken.
type OccupancyStats struct {
	Total    int     `json:"total"`
	Occupied int     `json:"occupied"`
	Free     int     `json:"free"`
	Rate     float64 `json:"rate"`
}

// OutstandingStats counts reservations with money still due.
type OutstandingStats struct {
	Count int           `json:"count"`
	Total models.Amount `json:"total"`
}

// Daily totals reservations checked in on ref and purchases dated ref.
func Daily(reservations []models.Reservation, purchases []models.Purchase, ref models.Date) DailyTotals {
	out := DailyTotals{Date: ref, Revenue: models.Zero, Purchases: models.Zero}
	for _, r := range reservations {
		if r.CheckIn.SameDay(ref) {
			out.Revenue = out.Revenue.Add(r.Total)
			out.Arrivals++
		}
		if r.CheckOut.SameDay(ref) {
			out.Departures++
		}
	}
	for _, p := range purchases {
		if p.Date.SameDay(ref) {
			out.Purchases = out.Purchases.Add(p.Total())
		}
	}
	return out
}

// Monthly groups reservation totals by check-in month and purchase totals by
// purchase month, keeping only records that fall in year.
func Monthly(reservations []models.Reservation, purchases []models.Purchase, year int) MonthlyTotals {
	out := MonthlyTotals{Year: year}
	for i := range out.Revenue {
		out.Revenue[i] = models.Zero
		out.Purchases[i] = models.Zero
	}
	for _, r := range reservations {
		if r.CheckIn.IsZero() || r.CheckIn.Year() != year {
			continue
		}
		slot := int(r.CheckIn.Month()) - 1
		out.Revenue[slot] = out.Revenue[slot].Add(r.Total)
	}
	for _, p := range purchases {
		if p.Date.IsZero() || p.Date.Year() != year {
			continue
		}
		slot := int(p.Date.Month()) - 1
		out.Purchases[slot] = out.Purchases[slot].Add(p.Total())
	}
	return out
}

// Occupancy counts a room as occupied when its status label does not say the
// room is available. Rooms with an unknown status count as occupied.
func Occupancy(rooms []models.Room, statuses []models.RoomStatus) OccupancyStats {
	labels := models.StatusIndex(statuses)
	out := OccupancyStats{Total: len(rooms)}
	for _, room := range rooms {
		if IsAvailableLabel(labels[room.StatusID]) {
			out.Free++
		} else {
			out.Occupied++
		}
	}
	if out.Total > 0 {
		rate := float64(out.Occupied) / float64(out.Total) * 100
		out.Rate = math.Round(rate*100) / 100
	}
	return out
}

// Outstanding sums strictly positive remainders.
func Outstanding(reservations []models.Reservation) OutstandingStats {
	out := OutstandingStats{Total: models.Zero}
	for _, r := range reservations {
		if r.Remainder.IsPositive() {
			out.Count++
			out.Total = out.Total.Add(r.Remainder)
		}
	}
	return out
}

var (
	availableMarkers   = []string{"disponible", "available", "libre"}
	unavailableMarkers = []string{"indisponible", "non disponible", "unavailable", "non libre"}
)

// IsAvailableLabel matches a status label against the "available" markers,
// ignoring case and accents. Negated labels like "Indisponible" are not
// available.
func IsAvailableLabel(label string) bool {
	folded := foldLabel(label)
	for _, m := range unavailableMarkers {
		if strings.Contains(folded, m) {
			return false
		}
	}
	for _, m := range availableMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func monthName(m time.Month) string {
	return [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}[m-1]
}
