package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mamadbah2/hotel-admin/internal/service/billing"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{"validation", fmt.Errorf("%w: nom du client requis", billing.ErrValidation), http.StatusBadRequest, ""},
		{"date range", billing.ErrInvalidDateRange, http.StatusBadRequest, ""},
		{"upstream unauthorized", fmt.Errorf("list: %w", &hotelapi.APIError{StatusCode: 401, Message: "Token invalide"}), http.StatusUnauthorized, "Token invalide"},
		{"upstream not found", fmt.Errorf("%w: %w", hotel.ErrNotFound, &hotelapi.APIError{StatusCode: 404, Message: "Chambre introuvable"}), http.StatusNotFound, "Chambre introuvable"},
		{"upstream conflict", &hotelapi.APIError{StatusCode: 409, Message: "conflit"}, http.StatusBadGateway, upstreamUnavailable},
		{"upstream crash", &hotelapi.APIError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway, upstreamUnavailable},
		{"timeout", fmt.Errorf("get: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, upstreamUnavailable},
		{"transport", errors.New("connection refused"), http.StatusBadGateway, upstreamUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, text := statusFor(tc.err)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if tc.wantText != "" && text != tc.wantText {
				t.Errorf("text = %q, want %q", text, tc.wantText)
			}
		})
	}
}
