package hotel

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// ClientSummary aggregates the reservations of one client name.
type ClientSummary struct {
	Name         string        `json:"name"`
	Reservations int           `json:"reservations"`
	LastVisit    models.Date   `json:"last_visit"`
	TotalBilled  models.Amount `json:"total_billed"`
	Outstanding  models.Amount `json:"outstanding"`
}

// Clients derives the client list from reservations, most recent visit first.
func (s *Service) Clients(ctx context.Context) ([]ClientSummary, error) {
	reservations, err := s.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	return SummarizeClients(reservations), nil
}

// SummarizeClients groups reservations by client name, ignoring case and
// surrounding spaces.
func SummarizeClients(reservations []models.Reservation) []ClientSummary {
	index := map[string]int{}
	out := []ClientSummary{}
	for _, r := range reservations {
		name := strings.TrimSpace(r.ClientName)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, ClientSummary{Name: name, TotalBilled: models.Zero, Outstanding: models.Zero})
		}
		c := &out[i]
		c.Reservations++
		c.TotalBilled = c.TotalBilled.Add(r.Total)
		if r.Remainder.IsPositive() {
			c.Outstanding = c.Outstanding.Add(r.Remainder)
		}
		if r.CheckIn.After(c.LastVisit.Time) {
			c.LastVisit = r.CheckIn
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastVisit.After(out[j].LastVisit.Time)
	})
	return out
}

// Stay is a reservation seen from the front desk on a given day.
type Stay struct {
	Reservation    models.Reservation `json:"reservation"`
	RoomNumber     string             `json:"room_number"`
	PaymentPending bool               `json:"payment_pending"`
}

// Movements lists the arrivals and departures of one day.
type Movements struct {
	Date            models.Date `json:"date"`
	Arrivals        []Stay      `json:"arrivals"`
	Departures      []Stay      `json:"departures"`
	PendingPayments int         `json:"pending_payments"`
}

// Movements loads reservations and rooms concurrently and picks the stays
// starting or ending on day.
func (s *Service) Movements(ctx context.Context, day time.Time) (*Movements, error) {
	rooms, reservations, err := s.RoomsAndReservations(ctx)
	if err != nil {
		return nil, err
	}
	m := DayMovements(reservations, rooms, models.NewDate(day))
	return &m, nil
}

// RoomsAndReservations fetches both lists concurrently.
func (s *Service) RoomsAndReservations(ctx context.Context) ([]models.Room, []models.Reservation, error) {
	var (
		reservations []models.Reservation
		rooms        []models.Room
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		reservations, err = s.ListReservations(gctx)
		return err
	})
	g.Go(func() (err error) {
		rooms, err = s.Rooms.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rooms, reservations, nil
}

// DayMovements is the pure part of Movements.
func DayMovements(reservations []models.Reservation, rooms []models.Room, day models.Date) Movements {
	roomIdx := models.RoomIndex(rooms)
	out := Movements{Date: day, Arrivals: []Stay{}, Departures: []Stay{}}
	for _, r := range reservations {
		stay := Stay{Reservation: r, RoomNumber: r.RoomNumber, PaymentPending: r.Remainder.IsPositive()}
		if room, ok := roomIdx[r.RoomID]; ok {
			stay.RoomNumber = room.Number
		}
		if r.CheckIn.SameDay(day) {
			out.Arrivals = append(out.Arrivals, stay)
		}
		if r.CheckOut.SameDay(day) {
			out.Departures = append(out.Departures, stay)
			if stay.PaymentPending {
				out.PendingPayments++
			}
		}
	}
	return out
}

// Unpaid lists reservations with a positive remainder, largest first.
func (s *Service) Unpaid(ctx context.Context) ([]models.Reservation, error) {
	reservations, err := s.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Reservation{}
	for _, r := range reservations {
		if r.Remainder.IsPositive() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Remainder.GreaterThan(out[j].Remainder.Decimal)
	})
	return out, nil
}

// UserView is a user with its profile label and without credentials.
type UserView struct {
	models.User
	ProfileLabel string `json:"profil"`
}

// UserDirectory is the users screen.
type UserDirectory struct {
	Users  []UserView `json:"users"`
	Admins int        `json:"admins"`
}

const adminProfileLabel = "administrateur"

// Users loads users and profiles concurrently and joins them.
func (s *Service) Users(ctx context.Context) (*UserDirectory, error) {
	var (
		users    []models.User
		profiles []models.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.api.Users.List(gctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		profiles, err = s.Profiles.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	dir := BuildDirectory(users, profiles)
	return &dir, nil
}

// BuildDirectory joins users with profile labels.
func BuildDirectory(users []models.User, profiles []models.Profile) UserDirectory {
	labels := models.ProfileIndex(profiles)
	dir := UserDirectory{Users: make([]UserView, 0, len(users))}
	for _, u := range users {
		u.Password = ""
		label := labels[u.ProfileID]
		if strings.EqualFold(strings.TrimSpace(label), adminProfileLabel) {
			dir.Admins++
		}
		dir.Users = append(dir.Users, UserView{User: u, ProfileLabel: label})
	}
	return dir
}

// GetUser fetches one user without its password.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.api.Users.Get(ctx, id)
	if err != nil {
		return nil, notFound(fmt.Errorf("get user %d: %w", id, err))
	}
	u.Password = ""
	return u, nil
}
