package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/reporting"
)

// ReportingAdapter produces the day's statistics.
type ReportingAdapter interface {
	Snapshot(ctx context.Context, ref time.Time) (*reporting.Summary, error)
}

// ReportStore persists daily snapshots.
type ReportStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Notifier delivers the report text to the manager.
type Notifier interface {
	NotifyManager(ctx context.Context, message string) error
}

// Sink is a named report destination.
type Sink struct {
	Name  string
	Store ReportStore
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	spec         string
	reportingSvc ReportingAdapter
	sinks        []Sink
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewScheduler creates a scheduler that runs the daily report on spec, a
// five-field cron expression evaluated in loc. notifier may be nil.
func NewScheduler(spec string, loc *time.Location, reportingSvc ReportingAdapter, sinks []Sink, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		spec:         spec,
		reportingSvc: reportingSvc,
		sinks:        sinks,
		notifier:     notifier,
		logger:       logger,
		now:          func() time.Time { return time.Now().In(loc) },
	}
}

// Start registers the daily job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.RunDailyReport(ctx); err != nil {
			s.logger.Error("daily report failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.spec, err)
	}

	s.logger.Info("starting scheduler", zap.String("daily_report", s.spec), zap.Int("sinks", len(s.sinks)))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunDailyReport builds today's report and hands it to every sink and the
// notifier. A failing destination does not stop the others; their errors are
// joined.
func (s *Scheduler) RunDailyReport(ctx context.Context) error {
	now := s.now()
	summary, err := s.reportingSvc.Snapshot(ctx, now)
	if err != nil {
		return fmt.Errorf("build daily report: %w", err)
	}
	report := summary.Report(now)

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Store.SaveDailyReport(ctx, report); err != nil {
			s.logger.Error("failed to store daily report", zap.String("sink", sink.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name, err))
			continue
		}
		s.logger.Info("daily report stored", zap.String("sink", sink.Name), zap.Time("date", report.Date))
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyManager(ctx, summary.Text()); err != nil {
			s.logger.Error("failed to send daily report", zap.Error(err))
			errs = append(errs, fmt.Errorf("whatsapp: %w", err))
		} else {
			s.logger.Info("daily report sent successfully")
		}
	}

	return errors.Join(errs...)
}
