package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
)

// AuthHandler forwards logins to the hotel API.
type AuthHandler struct {
	svc    *hotel.Service
	logger *zap.Logger
}

func NewAuthHandler(svc *hotel.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Login exchanges credentials for an API token.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "identifiant et mot de passe requis")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, h.logger, "login failed", err)
		return
	}

	h.logger.Info("user logged in", zap.String("login", creds.Login), zap.String("profile", resp.User.Profile))
	c.JSON(http.StatusOK, resp)
}
