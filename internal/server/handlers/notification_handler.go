package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
)

// NotificationHandler serves the activity feed.
type NotificationHandler struct {
	svc    *hotel.Service
	logger *zap.Logger
}

func NewNotificationHandler(svc *hotel.Service, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{svc: svc, logger: logger}
}

func (h *NotificationHandler) List(c *gin.Context) {
	feed, err := h.svc.Notifications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list notifications failed", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// View marks the notification read and returns it with its entity name.
func (h *NotificationHandler) View(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := h.svc.ViewNotification(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "view notification failed", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteNotification(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete notification failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
