package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
	"github.com/mamadbah2/hotel-admin/internal/service/reporting"
	"github.com/mamadbah2/hotel-admin/internal/service/timeline"
)

// DashboardHandler serves the statistics block and the month views.
type DashboardHandler struct {
	reporting *reporting.Service
	hotel     *hotel.Service
	dayWidth  int
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

func NewDashboardHandler(reportingSvc *reporting.Service, hotelSvc *hotel.Service, dayWidth int, loc *time.Location, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{
		reporting: reportingSvc,
		hotel:     hotelSvc,
		dayWidth:  dayWidth,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

type timelineResponse struct {
	timeline.Timeline
	Previous string `json:"previous"`
	Next     string `json:"next"`
}

type calendarResponse struct {
	timeline.Calendar
	Previous string `json:"previous"`
	Next     string `json:"next"`
}

// Summary returns the statistics of "date" (default today).
func (h *DashboardHandler) Summary(c *gin.Context) {
	day, ok := dateQuery(c, "date", h.now().In(h.loc))
	if !ok {
		return
	}
	summary, err := h.reporting.Snapshot(c.Request.Context(), day)
	if err != nil {
		respondError(c, h.logger, "dashboard summary failed", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Timeline returns the per-room bars of "month" (YYYY-MM, default current).
func (h *DashboardHandler) Timeline(c *gin.Context) {
	w, ok := h.monthQuery(c)
	if !ok {
		return
	}
	rooms, reservations, err := h.hotel.RoomsAndReservations(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "dashboard timeline failed", err)
		return
	}
	c.JSON(http.StatusOK, timelineResponse{
		Timeline: timeline.Build(w, rooms, reservations, h.dayWidth),
		Previous: w.Previous().Start.Format("2006-01"),
		Next:     w.Next().Start.Format("2006-01"),
	})
}

// Calendar returns per-day booking counts of "month".
func (h *DashboardHandler) Calendar(c *gin.Context) {
	w, ok := h.monthQuery(c)
	if !ok {
		return
	}
	reservations, err := h.hotel.ListReservations(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "dashboard calendar failed", err)
		return
	}
	c.JSON(http.StatusOK, calendarResponse{
		Calendar: timeline.BuildCalendar(w, reservations, h.now().In(h.loc)),
		Previous: w.Previous().Start.Format("2006-01"),
		Next:     w.Next().Start.Format("2006-01"),
	})
}

func (h *DashboardHandler) monthQuery(c *gin.Context) (timeline.Window, bool) {
	raw := c.Query("month")
	if raw == "" {
		now := h.now().In(h.loc)
		return timeline.Month(now.Year(), now.Month()), true
	}
	w, err := timeline.ParseMonth(raw)
	if err != nil {
		badRequest(c, "mois invalide, format attendu AAAA-MM")
		return timeline.Window{}, false
	}
	return w, true
}
