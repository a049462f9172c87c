package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/messaging"
	"github.com/mamadbah2/hotel-admin/pkg/clients/whatsapp"
)

// WebhookHandler exposes the WhatsApp bot: Meta's webhook for manager
// commands and an endpoint to push a message to the manager or any number.
type WebhookHandler struct {
	svc    messaging.MessagingService
	logger *zap.Logger
}

func NewWebhookHandler(svc messaging.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, logger: logger}
}

// Verify answers Meta's subscription challenge.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	resp, err := h.svc.VerifyWebhookToken(mode, c.Query("hub.verify_token"), c.Query("hub.challenge"))
	if err != nil {
		h.logger.Warn("webhook verification failed", zap.String("mode", mode), zap.Error(err))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	h.logger.Info("webhook subscription verified")
	c.String(http.StatusOK, resp)
}

// Receive runs the commands found in a Meta callback. Processing failures
// are logged and acknowledged with 200.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	messages := payload.InboundMessages()
	if len(messages) == 0 {
		// Delivery and read receipts.
		h.logger.Debug("webhook callback without messages")
		c.Status(http.StatusOK)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("failed processing webhook",
			zap.Int("messages", len(messages)),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Error(err))
	}
	c.Status(http.StatusOK)
}

// SendMessage pushes a text to the manager, or to "to" when given.
func (h *WebhookHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "message requis")
		return
	}
	req.To = strings.TrimSpace(req.To)

	var err error
	recipient := req.To
	if req.ToManager() {
		recipient = "manager"
		err = h.svc.NotifyManager(c.Request.Context(), req.Message)
	} else {
		err = h.svc.SendOutbound(c.Request.Context(), req)
	}

	if err == nil {
		c.JSON(http.StatusAccepted, gin.H{"to": recipient})
		return
	}
	if errors.Is(err, messaging.ErrManagerNotConfigured) {
		badRequest(c, "destinataire requis: aucun numéro de gérant configuré")
		return
	}

	h.logger.Error("failed sending outbound", zap.String("to", recipient), zap.Error(err))
	message := "envoi WhatsApp impossible"
	var apiErr *whatsapp.APIError
	if errors.As(err, &apiErr) && apiErr.Detail.Message != "" {
		message = apiErr.Detail.Message
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": message})
}
