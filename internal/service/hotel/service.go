// Package hotel implements the back-office operations of the dashboard on top
// of the hotel REST API: CRUD for every collection, reservation billing,
// client and departure views, user directory and notifications.
package hotel

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/hotel-admin/internal/cache"
	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/billing"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

const (
	roomsCacheKey    = "rooms"
	statusesCacheKey = "room-statuses"
	unitsCacheKey    = "units"
	profilesCacheKey = "profiles"
)

// Service orchestrates calls to the hotel API.
type Service struct {
	api    *hotelapi.Client
	logger *zap.Logger
	now    func() time.Time

	Rooms     *Catalog[models.Room]
	Statuses  *Catalog[models.RoomStatus]
	Units     *Catalog[models.Unit]
	Profiles  *Catalog[models.Profile]
	Purchases *Catalog[models.Purchase]
}

// NewService wires the service. A nil cache disables list caching.
func NewService(api *hotelapi.Client, c cache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{
		api:       api,
		logger:    logger,
		now:       time.Now,
		Rooms:     &Catalog[models.Room]{res: api.Rooms, cache: c, cacheKey: roomsCacheKey, prepare: prepareRoom, logger: logger},
		Statuses:  &Catalog[models.RoomStatus]{res: api.RoomStatuses, cache: c, cacheKey: statusesCacheKey, prepare: prepareStatus, logger: logger},
		Units:     &Catalog[models.Unit]{res: api.Units, cache: c, cacheKey: unitsCacheKey, logger: logger},
		Profiles:  &Catalog[models.Profile]{res: api.Profiles, cache: c, cacheKey: profilesCacheKey, logger: logger},
		Purchases: &Catalog[models.Purchase]{res: api.Purchases, cache: c, prepare: preparePurchase, logger: logger},
	}
}

// Login forwards credentials to the API.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return resp, nil
}

// The List* methods satisfy reporting.Source.

func (s *Service) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.Rooms.List(ctx)
}

func (s *Service) ListRoomStatuses(ctx context.Context) ([]models.RoomStatus, error) {
	return s.Statuses.List(ctx)
}

func (s *Service) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return s.Purchases.List(ctx)
}

func (s *Service) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	items, err := s.api.Reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if items == nil {
		items = []models.Reservation{}
	}
	return items, nil
}

// GetReservation fetches one reservation.
func (s *Service) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	r, err := s.api.Reservations.Get(ctx, id)
	if err != nil {
		return nil, notFound(fmt.Errorf("get reservation %d: %w", id, err))
	}
	return r, nil
}

// CreateReservation validates r, fills the nightly rate from the room when
// none was given, recomputes nights/total/remainder and sends it.
func (s *Service) CreateReservation(ctx context.Context, r models.Reservation) (*models.Reservation, error) {
	if err := s.prepareReservation(ctx, &r); err != nil {
		return nil, err
	}
	if r.FileDate.IsZero() {
		r.FileDate = models.NewDate(s.now())
	}
	created, err := s.api.Reservations.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	s.logger.Info("reservation created",
		zap.String("client", r.ClientName),
		zap.Int64("room_id", r.RoomID),
		zap.Int("nights", r.Nights),
		zap.String("total", r.Total.String()))
	return created, nil
}

// UpdateReservation applies the same rules as CreateReservation.
func (s *Service) UpdateReservation(ctx context.Context, id int64, r models.Reservation) (*models.Reservation, error) {
	if err := s.prepareReservation(ctx, &r); err != nil {
		return nil, err
	}
	updated, err := s.api.Reservations.Update(ctx, id, r)
	if err != nil {
		return nil, notFound(fmt.Errorf("update reservation %d: %w", id, err))
	}
	return updated, nil
}

// DeleteReservation removes a reservation.
func (s *Service) DeleteReservation(ctx context.Context, id int64) error {
	if err := s.api.Reservations.Delete(ctx, id); err != nil {
		return notFound(fmt.Errorf("delete reservation %d: %w", id, err))
	}
	return nil
}

// prepareReservation fills derived fields. The room number is a join column
// of the API's list view and is never written back.
func (s *Service) prepareReservation(ctx context.Context, r *models.Reservation) error {
	if err := billing.Validate(*r); err != nil {
		return err
	}
	var err error
	if r.RoomRate.IsZero() {
		room, getErr := s.Rooms.Get(ctx, r.RoomID)
		if getErr != nil {
			return fmt.Errorf("load room %d: %w", r.RoomID, getErr)
		}
		err = billing.ApplyRoom(r, *room)
	} else {
		err = billing.Recompute(r)
	}
	r.RoomNumber = ""
	return err
}

// ReservationForm is everything the edit screen needs.
type ReservationForm struct {
	Reservation *models.Reservation `json:"reservation"`
	Rooms       []models.Room       `json:"rooms"`
	Statuses    []models.RoomStatus `json:"statuses"`
}

// EditForm loads rooms, statuses and the reservation concurrently.
func (s *Service) EditForm(ctx context.Context, id int64) (*ReservationForm, error) {
	var form ReservationForm
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		form.Rooms, err = s.Rooms.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		form.Statuses, err = s.Statuses.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		form.Reservation, err = s.GetReservation(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &form, nil
}

func prepareRoom(r *models.Room) error {
	if r.Number == "" {
		return fmt.Errorf("%w: numéro de chambre requis", billing.ErrValidation)
	}
	if r.Rate.IsNegative() {
		return fmt.Errorf("%w: tarif négatif", billing.ErrValidation)
	}
	return nil
}

func prepareStatus(st *models.RoomStatus) error {
	if st.Label == "" {
		return fmt.Errorf("%w: libellé requis", billing.ErrValidation)
	}
	return nil
}

func preparePurchase(p *models.Purchase) error {
	if p.Product == "" {
		return fmt.Errorf("%w: produit requis", billing.ErrValidation)
	}
	if p.Date.IsZero() {
		p.Date = models.NewDate(time.Now())
	}
	p.Amount = p.Quantity.Mul(p.UnitPrice)
	p.Unit = nil
	return nil
}
