package timeline

import (
	"time"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// DayCell is one day of the month grid.
type DayCell struct {
	Day      int  `json:"day"`
	Bookings int  `json:"bookings"`
	Today    bool `json:"today"`
}

// Calendar is the month grid: blank cells before day 1 (Sunday first), then
// one cell per day.
type Calendar struct {
	Month         string    `json:"month"`
	LeadingBlanks int       `json:"leading_blanks"`
	Days          []DayCell `json:"days"`
}

// BuildCalendar counts, for each night of w, the reservations occupying it.
// A stay occupies the nights from check-in up to but excluding check-out.
func BuildCalendar(w Window, reservations []models.Reservation, today time.Time) Calendar {
	n := w.Days()
	out := Calendar{
		Month:         w.Start.Format("2006-01"),
		LeadingBlanks: int(w.Start.Weekday()),
		Days:          make([]DayCell, n),
	}
	todayDate := models.NewDate(today)
	for i := range out.Days {
		out.Days[i].Day = i + 1
		out.Days[i].Today = w.Start.AddDate(0, 0, i).Equal(todayDate.Time)
	}

	for _, r := range reservations {
		if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
			continue
		}
		bar, ok := Layout(r.CheckIn.Time, r.CheckOut.Time, w, 1)
		if !ok {
			continue
		}
		for d := bar.OffsetDays; d < bar.OffsetDays+bar.Days && d < n; d++ {
			out.Days[d].Bookings++
		}
	}
	return out
}
