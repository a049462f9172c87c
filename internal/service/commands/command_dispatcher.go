package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
	"github.com/mamadbah2/hotel-admin/internal/service/reporting"
	"github.com/mamadbah2/hotel-admin/pkg/clients/anthropic"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	dateFormat     = "02/01/2006"
	maxUnpaidLines = 10
)

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	Snapshot(ctx context.Context, ref time.Time) (*reporting.Summary, error)
}

// FrontDesk defines the day-to-day views required by the dispatcher.
type FrontDesk interface {
	Movements(ctx context.Context, day time.Time) (*hotel.Movements, error)
	Unpaid(ctx context.Context) ([]models.Reservation, error)
}

// Dispatcher answers manager messages.
type Dispatcher interface {
	Reply(ctx context.Context, text, sender string) (string, error)
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	reporting  ReportingAdapter
	desk       FrontDesk
	classifier anthropic.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewService constructs a command dispatcher. classifier may be nil, in
// which case free text gets the help message.
func NewService(reporting ReportingAdapter, desk FrontDesk, classifier anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reporting:  reporting,
		desk:       desk,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

// Reply resolves text to a command and runs it.
func (s *Service) Reply(ctx context.Context, text, sender string) (string, error) {
	cmd := s.Resolve(ctx, text)
	reply, err := s.HandleCommand(ctx, cmd, sender)
	if errors.Is(err, ErrInvalidArguments) {
		return "Argument invalide. " + HelpText(), nil
	}
	return reply, err
}

// Resolve parses slash commands directly and asks the classifier for free text.
func (s *Service) Resolve(ctx context.Context, text string) models.Command {
	if models.IsCommand(text) || s.classifier == nil {
		return models.ParseCommand(text)
	}

	allowed := make([]string, 0, len(models.KnownCommands))
	for _, c := range models.KnownCommands {
		allowed = append(allowed, string(c))
	}

	name, err := s.classifier.ClassifyCommand(ctx, text, allowed)
	if err != nil {
		s.logger.Warn("command classification failed", zap.Error(err))
		return models.Command{Type: models.CommandUnknown, Raw: text}
	}
	if name == "" {
		return models.Command{Type: models.CommandUnknown, Raw: text}
	}

	s.logger.Debug("free text classified", zap.String("command", name))
	return models.Command{Type: models.CommandType(name), Raw: text}
}

// HandleCommand builds the reply text for cmd.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	now := s.now()

	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Any("args", cmd.Args))

	switch cmd.Type {
	case models.CommandStats:
		summary, err := s.reporting.Snapshot(ctx, now)
		if err != nil {
			return "", err
		}
		return summary.Text(), nil
	case models.CommandOccupancy:
		summary, err := s.reporting.Snapshot(ctx, now)
		if err != nil {
			return "", err
		}
		return summary.OccupancyText(), nil
	case models.CommandArrivals, models.CommandDepartures:
		day, err := parseDay(cmd.Args, now)
		if err != nil {
			return "", err
		}
		m, err := s.desk.Movements(ctx, day)
		if err != nil {
			return "", err
		}
		if cmd.Type == models.CommandArrivals {
			return formatStays("Arrivées", m.Date, m.Arrivals), nil
		}
		return formatStays("Départs", m.Date, m.Departures), nil
	case models.CommandUnpaid:
		unpaid, err := s.desk.Unpaid(ctx)
		if err != nil {
			return "", err
		}
		return formatUnpaid(unpaid), nil
	case models.CommandHelp, models.CommandUnknown:
		return HelpText(), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// HelpText lists the supported commands.
func HelpText() string {
	return strings.Join([]string{
		"Commandes disponibles:",
		"/stats - bilan du jour",
		"/occupation - taux d'occupation",
		"/arrivees [demain|JJ/MM/AAAA] - arrivées du jour",
		"/departs [demain|JJ/MM/AAAA] - départs du jour",
		"/impayes - réservations avec un reste à payer",
		"/aide - cette aide",
	}, "\n")
}

// parseDay reads an optional day argument: "hier", "demain", or a date.
func parseDay(args []string, now time.Time) (time.Time, error) {
	if len(args) == 0 {
		return now, nil
	}
	switch args[0] {
	case "aujourd'hui", "aujourdhui":
		return now, nil
	case "demain":
		return now.AddDate(0, 0, 1), nil
	case "hier":
		return now.AddDate(0, 0, -1), nil
	}
	for _, layout := range []string{dateFormat, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, args[0], now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidArguments
}

func formatStays(title string, day models.Date, stays []hotel.Stay) string {
	if len(stays) == 0 {
		return fmt.Sprintf("%s du %s: aucune.", title, day.Format(dateFormat))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s du %s (%d):", title, day.Format(dateFormat), len(stays))
	for _, st := range stays {
		fmt.Fprintf(&b, "\n- %s, chambre %s", st.Reservation.ClientName, st.RoomNumber)
		if st.PaymentPending {
			fmt.Fprintf(&b, " (reste %s)", st.Reservation.Remainder.StringFixed(0))
		}
	}
	return b.String()
}

func formatUnpaid(unpaid []models.Reservation) string {
	if len(unpaid) == 0 {
		return "Aucun paiement en attente."
	}
	total := models.Zero
	for _, r := range unpaid {
		total = total.Add(r.Remainder)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d réservation(s) impayée(s), reste total %s:", len(unpaid), total.StringFixed(0))
	for i, r := range unpaid {
		if i == maxUnpaidLines {
			fmt.Fprintf(&b, "\n... et %d autre(s)", len(unpaid)-maxUnpaidLines)
			break
		}
		fmt.Fprintf(&b, "\n- %s (sortie %s): %s", r.ClientName, r.CheckOut.Format(dateFormat), r.Remainder.StringFixed(0))
	}
	return b.String()
}
