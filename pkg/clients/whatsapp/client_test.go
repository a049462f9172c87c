package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mamadbah2/hotel-admin/internal/config"
)

func TestSendTextMessage(t *testing.T) {
	var path, auth string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{BaseURL: srv.URL, APIVersion: "v21.0", AccessToken: "tok", PhoneNumberID: "555"})
	resp, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{To: "224600000000", Body: "Bilan"})
	if err != nil {
		t.Fatalf("SendTextMessage: %v", err)
	}

	if path != "/v21.0/555/messages" || auth != "Bearer tok" {
		t.Errorf("request = %s (%s)", path, auth)
	}
	if payload["to"] != "224600000000" || payload["type"] != "text" {
		t.Errorf("payload = %v", payload)
	}
	if resp.MessageID() != "wamid.1" {
		t.Errorf("message id = %q", resp.MessageID())
	}
}

func TestSendTextMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{BaseURL: srv.URL, PhoneNumberID: "555"})
	_, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{To: "1", Body: "x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Detail.Code != 100 || apiErr.Detail.Message != "Invalid parameter" {
		t.Errorf("api error = %+v", apiErr)
	}

	if _, err := client.SendTextMessage(context.Background(), SendTextMessageRequest{Body: "x"}); err == nil {
		t.Error("missing recipient should fail")
	}
}
