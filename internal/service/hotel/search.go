package hotel

import (
	"strings"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// FilterPurchases keeps purchases whose product or observation contains term.
func FilterPurchases(items []models.Purchase, term string) []models.Purchase {
	term = normalizeTerm(term)
	if term == "" {
		return items
	}
	out := []models.Purchase{}
	for _, p := range items {
		if contains(p.Product, term) || contains(p.Observation, term) {
			out = append(out, p)
		}
	}
	return out
}

// FilterStatuses keeps statuses whose label contains term.
func FilterStatuses(items []models.RoomStatus, term string) []models.RoomStatus {
	term = normalizeTerm(term)
	if term == "" {
		return items
	}
	out := []models.RoomStatus{}
	for _, st := range items {
		if contains(st.Label, term) {
			out = append(out, st)
		}
	}
	return out
}

// FilterProfiles keeps profiles whose label contains term.
func FilterProfiles(items []models.Profile, term string) []models.Profile {
	term = normalizeTerm(term)
	if term == "" {
		return items
	}
	out := []models.Profile{}
	for _, p := range items {
		if contains(p.Label, term) {
			out = append(out, p)
		}
	}
	return out
}

// FilterUsers keeps users whose first name, last name or email contains term.
func FilterUsers(items []UserView, term string) []UserView {
	term = normalizeTerm(term)
	if term == "" {
		return items
	}
	out := []UserView{}
	for _, u := range items {
		if contains(u.FirstName, term) || contains(u.LastName, term) || contains(u.Email, term) {
			out = append(out, u)
		}
	}
	return out
}

// FilterRooms keeps rooms whose number contains term.
func FilterRooms(items []models.Room, term string) []models.Room {
	term = normalizeTerm(term)
	if term == "" {
		return items
	}
	out := []models.Room{}
	for _, r := range items {
		if contains(r.Number, term) {
			out = append(out, r)
		}
	}
	return out
}

// FilterReservations keeps reservations whose client name or room number contains term.
func FilterReservations(items []models.Reservation, term string) []models.Reservation {
	term = normalizeTerm(term)
	if term == "" {
		return items
	}
	out := []models.Reservation{}
	for _, r := range items {
		if contains(r.ClientName, term) || contains(r.RoomNumber, term) {
			out = append(out, r)
		}
	}
	return out
}
