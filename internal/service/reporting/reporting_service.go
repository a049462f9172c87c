package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// Source lists the records the statistics are computed from.
type Source interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListRoomStatuses(ctx context.Context) ([]models.RoomStatus, error)
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	ListPurchases(ctx context.Context) ([]models.Purchase, error)
}

// Dataset is one consistent fetch of everything the dashboard needs.
type Dataset struct {
	Rooms        []models.Room
	Statuses     []models.RoomStatus
	Reservations []models.Reservation
	Purchases    []models.Purchase
}

// Summary is the dashboard statistics block.
type Summary struct {
	Date        models.Date      `json:"date"`
	Daily       DailyTotals      `json:"daily"`
	Monthly     MonthlyTotals    `json:"monthly"`
	Occupancy   OccupancyStats   `json:"occupancy"`
	Outstanding OutstandingStats `json:"outstanding"`
}

// Service computes hotel statistics from freshly fetched records.
type Service struct {
	source Source
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// Load fetches rooms, statuses, reservations and purchases concurrently. The
// first failure cancels the remaining calls.
func (s *Service) Load(ctx context.Context) (*Dataset, error) {
	var data Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rooms, err := s.source.ListRooms(gctx)
		if err != nil {
			return fmt.Errorf("load rooms: %w", err)
		}
		data.Rooms = rooms
		return nil
	})
	g.Go(func() error {
		statuses, err := s.source.ListRoomStatuses(gctx)
		if err != nil {
			return fmt.Errorf("load room statuses: %w", err)
		}
		data.Statuses = statuses
		return nil
	})
	g.Go(func() error {
		reservations, err := s.source.ListReservations(gctx)
		if err != nil {
			return fmt.Errorf("load reservations: %w", err)
		}
		data.Reservations = reservations
		return nil
	})
	g.Go(func() error {
		purchases, err := s.source.ListPurchases(gctx)
		if err != nil {
			return fmt.Errorf("load purchases: %w", err)
		}
		data.Purchases = purchases
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("dataset loaded",
		zap.Int("rooms", len(data.Rooms)),
		zap.Int("reservations", len(data.Reservations)),
		zap.Int("purchases", len(data.Purchases)))
	return &data, nil
}

// Snapshot loads the dataset and summarizes it for the day of ref.
func (s *Service) Snapshot(ctx context.Context, ref time.Time) (*Summary, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	summary := Summarize(data, ref)
	return &summary, nil
}

// Summarize computes every statistic over an already loaded dataset.
func Summarize(data *Dataset, ref time.Time) Summary {
	day := models.NewDate(ref)
	return Summary{
		Date:        day,
		Daily:       Daily(data.Reservations, data.Purchases, day),
		Monthly:     Monthly(data.Reservations, data.Purchases, day.Year()),
		Occupancy:   Occupancy(data.Rooms, data.Statuses),
		Outstanding: Outstanding(data.Reservations),
	}
}

// Report flattens the summary into a storable daily snapshot.
func (s Summary) Report(createdAt time.Time) models.DailyReport {
	return models.DailyReport{
		Date:             s.Date.Time,
		Revenue:          s.Daily.Revenue.Float(),
		Purchases:        s.Daily.Purchases.Float(),
		Arrivals:         s.Daily.Arrivals,
		Departures:       s.Daily.Departures,
		RoomsTotal:       s.Occupancy.Total,
		RoomsOccupied:    s.Occupancy.Occupied,
		OccupancyRate:    s.Occupancy.Rate,
		PendingPayments:  s.Outstanding.Count,
		OutstandingTotal: s.Outstanding.Total.Float(),
		MonthRevenue:     s.Monthly.Revenue[s.Date.Month()-1].Float(),
		CreatedAt:        createdAt,
	}
}

// Text renders the summary as a short French message.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bilan du %s\n", s.Date.Format("02/01/2006"))
	fmt.Fprintf(&b, "Arrivées: %d, départs: %d\n", s.Daily.Arrivals, s.Daily.Departures)
	fmt.Fprintf(&b, "Recettes du jour: %s\n", s.Daily.Revenue.StringFixed(0))
	fmt.Fprintf(&b, "Achats du jour: %s\n", s.Daily.Purchases.StringFixed(0))
	fmt.Fprintf(&b, "Recettes de %s: %s\n", monthName(s.Date.Month()), s.Monthly.Revenue[s.Date.Month()-1].StringFixed(0))
	b.WriteString(s.OccupancyText() + "\n")
	b.WriteString(s.OutstandingText())
	return b.String()
}

// OccupancyText is the one-line occupancy statement.
func (s Summary) OccupancyText() string {
	if s.Occupancy.Total == 0 {
		return "Occupation: aucune chambre enregistrée."
	}
	return fmt.Sprintf("Occupation: %.2f%% (%d/%d chambres occupées)", s.Occupancy.Rate, s.Occupancy.Occupied, s.Occupancy.Total)
}

// OutstandingText is the one-line pending payments statement.
func (s Summary) OutstandingText() string {
	if s.Outstanding.Count == 0 {
		return "Paiements en attente: aucun."
	}
	return fmt.Sprintf("Paiements en attente: %d pour un reste de %s", s.Outstanding.Count, s.Outstanding.Total.StringFixed(0))
}
