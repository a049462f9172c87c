package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
)

// ReservationHandler serves reservations and the front-desk views derived
// from them.
type ReservationHandler struct {
	svc    *hotel.Service
	loc    *time.Location
	logger *zap.Logger
}

func NewReservationHandler(svc *hotel.Service, loc *time.Location, logger *zap.Logger) *ReservationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationHandler{svc: svc, loc: loc, logger: logger}
}

// List returns reservations, narrowed by "q" and restricted to unpaid ones
// with "unpaid=true".
func (h *ReservationHandler) List(c *gin.Context) {
	var (
		items []models.Reservation
		err   error
	)
	if c.Query("unpaid") == "true" {
		items, err = h.svc.Unpaid(c.Request.Context())
	} else {
		items, err = h.svc.ListReservations(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.logger, "list reservations failed", err)
		return
	}
	c.JSON(http.StatusOK, hotel.FilterReservations(items, c.Query("q")))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	r, err := h.svc.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get reservation failed", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Form returns the reservation together with the room and status lists.
func (h *ReservationHandler) Form(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	form, err := h.svc.EditForm(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "load reservation form failed", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var r models.Reservation
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, "corps de requête invalide")
		return
	}
	created, err := h.svc.CreateReservation(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.logger, "create reservation failed", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var r models.Reservation
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, "corps de requête invalide")
		return
	}
	updated, err := h.svc.UpdateReservation(c.Request.Context(), id, r)
	if err != nil {
		respondError(c, h.logger, "update reservation failed", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteReservation(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete reservation failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clients lists the clients derived from reservations.
func (h *ReservationHandler) Clients(c *gin.Context) {
	clients, err := h.svc.Clients(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list clients failed", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// Departures lists arrivals and departures of "date" (YYYY-MM-DD, default today).
func (h *ReservationHandler) Departures(c *gin.Context) {
	day, ok := dateQuery(c, "date", time.Now().In(h.loc))
	if !ok {
		return
	}
	m, err := h.svc.Movements(c.Request.Context(), day)
	if err != nil {
		respondError(c, h.logger, "load departures failed", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// dateQuery reads a YYYY-MM-DD query parameter, falling back to def when absent.
func dateQuery(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	d, err := models.ParseDate(raw)
	if err != nil || d.IsZero() {
		badRequest(c, "date invalide, format attendu AAAA-MM-JJ")
		return time.Time{}, false
	}
	return d.Time, true
}
