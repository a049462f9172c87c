package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

func TestNights(t *testing.T) {
	base := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		out  time.Time
		want int
	}{
		{"three nights", base.AddDate(0, 0, 3), 3},
		{"same day", base, 0},
		{"partial day rounds up", base.Add(26 * time.Hour), 2},
		{"inverted", base.AddDate(0, 0, -2), -2},
	}
	for _, tc := range cases {
		if got := Nights(base, tc.out); got != tc.want {
			t.Errorf("%s: Nights = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRecomputeExample(t *testing.T) {
	r := models.Reservation{
		CheckIn:  models.DateOf(2026, time.January, 10),
		CheckOut: models.DateOf(2026, time.January, 13),
		RoomRate: models.AmountFromInt(50000),
		Paid:     models.AmountFromInt(20000),
	}
	if err := Recompute(&r); err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	if r.Nights != 3 {
		t.Errorf("nights = %d", r.Nights)
	}
	if !r.Total.Equal(models.AmountFromInt(150000)) {
		t.Errorf("total = %s", r.Total)
	}
	if !r.Remainder.Equal(models.AmountFromInt(130000)) {
		t.Errorf("remainder = %s", r.Remainder)
	}
}

func TestRecomputeKeepsInvariants(t *testing.T) {
	rates := []int64{0, 1, 15000, 50000}
	paid := []float64{0, 100, 99999.5}
	start := models.DateOf(2026, time.February, 27)

	for _, rate := range rates {
		for _, p := range paid {
			for n := 1; n <= 5; n++ {
				r := models.Reservation{
					CheckIn:  start,
					CheckOut: models.NewDate(start.AddDate(0, 0, n)),
					RoomRate: models.AmountFromInt(rate),
					Paid:     models.NewAmount(p),
				}
				if err := Recompute(&r); err != nil {
					t.Fatalf("Recompute: %v", err)
				}
				if want := Nights(r.CheckIn.Time, r.CheckOut.Time); r.Nights != want {
					t.Fatalf("nights = %d, want %d", r.Nights, want)
				}
				if rate > 0 && !r.Total.Equal(r.RoomRate.Times(r.Nights)) {
					t.Fatalf("total = %s, want rate*nights", r.Total)
				}
				if !r.Remainder.Equal(r.Total.Sub(r.Paid)) {
					t.Fatalf("remainder = %s, want total-paid", r.Remainder)
				}
			}
		}
	}
}

func TestRecomputeInvertedRange(t *testing.T) {
	r := models.Reservation{
		CheckIn:  models.DateOf(2026, time.January, 13),
		CheckOut: models.DateOf(2026, time.January, 13),
		RoomRate: models.AmountFromInt(50000),
		Total:    models.AmountFromInt(1),
	}
	if err := Recompute(&r); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("err = %v", err)
	}
	if !r.Total.IsZero() || !r.Remainder.IsZero() || r.Nights != 0 {
		t.Errorf("derived fields not cleared: %+v", r)
	}
}

func TestRecomputeIgnoresNightsWithoutDates(t *testing.T) {
	r := models.Reservation{
		CheckIn:  models.DateOf(2026, time.January, 13),
		Nights:   5,
		RoomRate: models.AmountFromInt(50000),
		Paid:     models.AmountFromInt(1000),
	}
	if err := Recompute(&r); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if r.Nights != 0 || !r.Total.IsZero() || !r.Remainder.Equal(models.AmountFromInt(-1000)) {
		t.Errorf("reservation = %+v", r)
	}
}

func TestApplyRoomAndPayment(t *testing.T) {
	r := models.Reservation{
		CheckIn:  models.DateOf(2026, time.January, 27),
		CheckOut: models.DateOf(2026, time.January, 30),
	}
	if err := ApplyRoom(&r, models.Room{ID: 4, Number: "202", Rate: models.AmountFromInt(80)}); err != nil {
		t.Fatalf("ApplyRoom: %v", err)
	}
	if r.RoomID != 4 || !r.Total.Equal(models.AmountFromInt(240)) {
		t.Errorf("after room: %+v", r)
	}

	ApplyPayment(&r, models.AmountFromInt(100))
	if !r.Remainder.Equal(models.AmountFromInt(140)) {
		t.Errorf("remainder = %s", r.Remainder)
	}
}

func TestValidate(t *testing.T) {
	err := Validate(models.Reservation{Paid: models.AmountFromInt(-1)})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v", err)
	}

	ok := models.Reservation{
		ClientName: "Sophie Dubois",
		RoomID:     2,
		CheckIn:    models.DateOf(2026, time.January, 29),
		CheckOut:   models.DateOf(2026, time.January, 31),
	}
	if err := Validate(ok); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}
