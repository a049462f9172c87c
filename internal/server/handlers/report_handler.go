package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/export"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
	"github.com/mamadbah2/hotel-admin/internal/service/reporting"
)

// ReportReader lists stored daily snapshots.
type ReportReader interface {
	ListDailyReports(ctx context.Context, from, to time.Time) ([]models.DailyReport, error)
}

// ReportHandler serves stored reports and XLSX exports.
type ReportHandler struct {
	reports   ReportReader
	reporting *reporting.Service
	hotel     *hotel.Service
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportHandler wires the handler. reports may be nil when no snapshot
// store is configured.
func NewReportHandler(reports ReportReader, reportingSvc *reporting.Service, hotelSvc *hotel.Service, loc *time.Location, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{
		reports:   reports,
		reporting: reportingSvc,
		hotel:     hotelSvc,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// Daily lists stored snapshots between "from" and "to" (inclusive, optional).
func (h *ReportHandler) Daily(c *gin.Context) {
	if h.reports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "historique des rapports non configuré"})
		return
	}
	from, ok := dateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", time.Time{})
	if !ok {
		return
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		badRequest(c, "la date de fin précède la date de début")
		return
	}

	reports, err := h.reports.ListDailyReports(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("list daily reports failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossible de lire l'historique des rapports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ExportReservations streams the reservations workbook.
func (h *ReportHandler) ExportReservations(c *gin.Context) {
	rooms, reservations, err := h.hotel.RoomsAndReservations(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "export reservations failed", err)
		return
	}
	wb, err := export.Reservations(hotel.FilterReservations(reservations, c.Query("q")), rooms)
	h.send(c, "reservations", wb, err)
}

// ExportPurchases streams the purchases workbook.
func (h *ReportHandler) ExportPurchases(c *gin.Context) {
	var (
		purchases []models.Purchase
		units     []models.Unit
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		purchases, err = h.hotel.Purchases.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		units, err = h.hotel.Units.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, h.logger, "export purchases failed", err)
		return
	}
	wb, err := export.Purchases(hotel.FilterPurchases(purchases, c.Query("q")), units)
	h.send(c, "achats", wb, err)
}

// ExportMonthly streams the twelve-month report of "year" (default current).
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	year := h.now().In(h.loc).Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1900 || y > 9999 {
			badRequest(c, "année invalide")
			return
		}
		year = y
	}

	data, err := h.reporting.Load(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "export monthly report failed", err)
		return
	}
	wb, err := export.Monthly(reporting.Monthly(data.Reservations, data.Purchases, year))
	h.send(c, "rapport_mensuel_"+strconv.Itoa(year), wb, err)
}

func (h *ReportHandler) send(c *gin.Context, prefix string, wb *export.Workbook, err error) {
	if err != nil {
		h.logger.Error("build workbook failed", zap.String("export", prefix), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "impossible de générer le fichier"})
		return
	}

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", "attachment; filename="+export.Filename(prefix, h.now().In(h.loc)))
	if err := wb.Write(c.Writer); err != nil {
		h.logger.Error("write workbook failed", zap.String("export", prefix), zap.Error(err))
	}
}
