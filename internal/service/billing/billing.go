// Package billing keeps the derived reservation fields (nights, total,
// remainder) consistent with the fields they are computed from.
package billing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

const day = 24 * time.Hour

// ErrInvalidDateRange means the check-out is not after the check-in.
var ErrInvalidDateRange = errors.New("la date de sortie doit être supérieure à la date d'entrée")

// ErrValidation wraps every field validation failure.
var ErrValidation = errors.New("données invalides")

// Nights is ceil((checkOut - checkIn) / 1 day). It is zero or negative when
// the range is empty or inverted.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(float64(checkOut.Sub(checkIn)) / float64(day)))
}

// Recompute refreshes nights, total and remainder from dates, rate and paid.
// Nights is zero until both dates are known. On an inverted date range the total and remainder are cleared and
// ErrInvalidDateRange is returned.
func Recompute(r *models.Reservation) error {
	if !r.CheckIn.IsZero() && !r.CheckOut.IsZero() {
		if !r.CheckOut.After(r.CheckIn.Time) {
			r.Nights = 0
			r.Total = models.Zero
			r.Remainder = models.Zero
			return ErrInvalidDateRange
		}
		r.Nights = Nights(r.CheckIn.Time, r.CheckOut.Time)
	} else {
		r.Nights = 0
	}

	if r.Nights > 0 && r.RoomRate.IsPositive() {
		r.Total = r.RoomRate.Times(r.Nights)
	} else {
		r.Total = models.Zero
	}
	r.Remainder = r.Total.Sub(r.Paid)
	return nil
}

// ApplyRoom copies the room tariff into the reservation and recomputes.
func ApplyRoom(r *models.Reservation, room models.Room) error {
	r.RoomID = room.ID
	r.RoomNumber = room.Number
	r.RoomRate = room.Rate
	return Recompute(r)
}

// ApplyPayment records the amount paid and refreshes the remainder.
func ApplyPayment(r *models.Reservation, paid models.Amount) {
	r.Paid = paid
	r.Remainder = r.Total.Sub(r.Paid)
}

// Validate checks the fields a reservation needs before it is sent upstream.
func Validate(r models.Reservation) error {
	var problems []string
	if strings.TrimSpace(r.ClientName) == "" {
		problems = append(problems, "nom du client requis")
	}
	if r.RoomID == 0 {
		problems = append(problems, "chambre requise")
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		problems = append(problems, "dates d'entrée et de sortie requises")
	}
	if r.RoomRate.IsNegative() {
		problems = append(problems, "le prix unitaire ne peut pas être négatif")
	}
	if r.Paid.IsNegative() {
		problems = append(problems, "le montant payé ne peut pas être négatif")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, ", "))
	}
	return nil
}

// Prepare validates r and recomputes its derived fields.
func Prepare(r *models.Reservation) error {
	if err := Validate(*r); err != nil {
		return err
	}
	return Recompute(r)
}
