// Package timeline lays reservations out on a month grid: horizontal bars per
// room for the timeline view and per-day counts for the calendar view.
package timeline

import (
	"fmt"
	"time"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// DefaultDayWidth is the pixel width of one day column.
const DefaultDayWidth = 40

const day = 24 * time.Hour

// Window is a visible month, [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Month returns the window covering year/month.
func Month(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// ParseMonth reads "YYYY-MM".
func ParseMonth(value string) (Window, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return Window{}, fmt.Errorf("invalid month %q: %w", value, err)
	}
	return Month(t.Year(), t.Month()), nil
}

// Days is the number of days in the window.
func (w Window) Days() int {
	return daysBetween(w.Start, w.End)
}

// Previous steps one month back.
func (w Window) Previous() Window {
	prev := w.Start.AddDate(0, -1, 0)
	return Month(prev.Year(), prev.Month())
}

// Next steps one month forward.
func (w Window) Next() Window { return Month(w.End.Year(), w.End.Month()) }

// Bar is the visible part of a stay inside a window.
type Bar struct {
	ReservationID int64  `json:"reservation_id"`
	ClientName    string `json:"client_name"`
	OffsetDays    int    `json:"offset_days"`
	Days          int    `json:"days"`
	Left          int    `json:"left"`
	Width         int    `json:"width"`
}

// Overlaps reports whether the stay [checkIn, checkOut) intersects w.
func Overlaps(checkIn, checkOut time.Time, w Window) bool {
	return checkIn.Before(w.End) && checkOut.After(w.Start)
}

// Layout clips the stay to w. The start is floored at the month start and the
// end capped at the month end, each independently. ok is false when nothing
// of the stay is visible.
func Layout(checkIn, checkOut time.Time, w Window, dayWidth int) (bar Bar, ok bool) {
	if !Overlaps(checkIn, checkOut, w) {
		return Bar{}, false
	}
	start := checkIn
	if start.Before(w.Start) {
		start = w.Start
	}
	end := checkOut
	if end.After(w.End) {
		end = w.End
	}

	bar.OffsetDays = daysBetween(w.Start, start)
	bar.Days = daysBetween(start, end)
	if bar.Days <= 0 {
		return Bar{}, false
	}
	bar.Left = bar.OffsetDays * dayWidth
	bar.Width = bar.Days * dayWidth
	return bar, true
}

// Row groups the bars of one room.
type Row struct {
	RoomID     int64  `json:"room_id"`
	RoomNumber string `json:"room_number"`
	Bars       []Bar  `json:"bars"`
}

// Timeline is the full month layout.
type Timeline struct {
	Month    string `json:"month"`
	Days     int    `json:"days"`
	DayWidth int    `json:"day_width"`
	Rows     []Row  `json:"rows"`
}

// Build lays out every reservation visible in w, one row per room ordered by
// room number. Reservations pointing at an unknown room go to a trailing row
// with RoomID 0.
func Build(w Window, rooms []models.Room, reservations []models.Reservation, dayWidth int) Timeline {
	if dayWidth <= 0 {
		dayWidth = DefaultDayWidth
	}

	sorted := append([]models.Room(nil), rooms...)
	models.SortRooms(sorted)

	rowIndex := make(map[int64]int, len(sorted))
	out := Timeline{Month: w.Start.Format("2006-01"), Days: w.Days(), DayWidth: dayWidth}
	for _, room := range sorted {
		rowIndex[room.ID] = len(out.Rows)
		out.Rows = append(out.Rows, Row{RoomID: room.ID, RoomNumber: room.Number, Bars: []Bar{}})
	}

	unassigned := Row{Bars: []Bar{}}
	for _, r := range reservations {
		if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
			continue
		}
		bar, ok := Layout(r.CheckIn.Time, r.CheckOut.Time, w, dayWidth)
		if !ok {
			continue
		}
		bar.ReservationID = r.ID
		bar.ClientName = r.ClientName

		if i, found := rowIndex[r.RoomID]; found {
			out.Rows[i].Bars = append(out.Rows[i].Bars, bar)
		} else {
			unassigned.Bars = append(unassigned.Bars, bar)
		}
	}
	if len(unassigned.Bars) > 0 {
		out.Rows = append(out.Rows, unassigned)
	}
	return out
}

// daysBetween counts whole days between two instants, rounding partial days up.
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	return n
}
