package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/service/billing"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

const upstreamUnavailable = "le service de l'hôtel est indisponible, réessayez plus tard"

// statusFor maps a service error to the HTTP status and message shown to the user.
func statusFor(err error) (int, string) {
	var apiErr *hotelapi.APIError
	switch {
	case errors.Is(err, billing.ErrValidation), errors.Is(err, billing.ErrInvalidDateRange):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return apiErr.StatusCode, apiErr.Message
		}
		return http.StatusBadGateway, upstreamUnavailable
	case errors.Is(err, hotel.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, upstreamUnavailable
	}
	return http.StatusBadGateway, upstreamUnavailable
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	status, text := statusFor(err)
	fields := []zap.Field{zap.Error(err), zap.Int("status", status), zap.String("request_id", c.GetString(RequestIDKey))}
	if status >= http.StatusInternalServerError {
		logger.Error(msg, fields...)
	} else {
		logger.Warn(msg, fields...)
	}
	c.JSON(status, gin.H{"error": text})
}

func badRequest(c *gin.Context, text string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": text})
}

// idParam reads the ":id" path parameter, answering 400 when it is not a
// positive integer.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "identifiant invalide")
		return 0, false
	}
	return id, true
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
