package hotelapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/hotel-admin/internal/config"
	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.HotelAPIConfig{BaseURL: srv.URL + "/api/", Token: token, Timeout: 5 * time.Second}, nil)
}

func TestListRoomsUsesCallerToken(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"IDChambre":1,"numero_Chambre":"101","tarif":"50000","IDstatusChambre":2}]`))
	}, "service-token")

	rooms, err := client.Rooms.List(WithToken(context.Background(), "caller-token"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if gotPath != "/api/chambres" {
		t.Errorf("path = %s", gotPath)
	}
	if gotAuth != "Bearer caller-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if len(rooms) != 1 || rooms[0].Number != "101" || !rooms[0].Rate.Equal(models.AmountFromInt(50000)) {
		t.Errorf("rooms = %+v", rooms)
	}
}

func TestServiceTokenFallback(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}, "service-token")

	if _, err := client.Units.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer service-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestAPIErrorCarriesUpstreamMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Réservation introuvable"}`))
	}, "")

	_, err := client.Reservations.Get(context.Background(), 42)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Réservation introuvable" {
		t.Errorf("api error = %+v", apiErr)
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	err := client.Rooms.Delete(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestUpdateReservationSendsBody(t *testing.T) {
	var method, path string
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"IDReservation":9}`))
	}, "")

	res := models.Reservation{
		ClientName: "Marie Martin",
		CheckIn:    models.DateOf(2026, time.January, 26),
		CheckOut:   models.DateOf(2026, time.January, 28),
		RoomRate:   models.AmountFromInt(80),
		Nights:     2,
		Total:      models.AmountFromInt(160),
	}
	updated, err := client.Reservations.Update(context.Background(), 9, res)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if method != http.MethodPut || path != "/api/reservations/9" {
		t.Errorf("request = %s %s", method, path)
	}
	if body["date_entree"] != "2026-01-26" || body["montant_total"] != float64(160) {
		t.Errorf("body = %v", body)
	}
	if updated.ID != 9 {
		t.Errorf("updated id = %d", updated.ID)
	}
}

func TestCreateUserWithImageIsMultipart(t *testing.T) {
	var contentType, firstName, fileBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			firstName = r.FormValue("prenom")
			if f, _, err := r.FormFile("image"); err == nil {
				b, _ := io.ReadAll(f)
				fileBody = string(b)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"IDutilisateur":3,"prenom":"Awa"}`))
	}, "")

	user := models.User{FirstName: "Awa", LastName: "Diallo", ProfileID: 1}
	created, err := client.Users.CreateWithImage(context.Background(), user, &Upload{Filename: "awa.png", Reader: strings.NewReader("png-bytes")})
	if err != nil {
		t.Fatalf("CreateWithImage: %v", err)
	}

	if !strings.HasPrefix(contentType, "multipart/form-data") {
		t.Errorf("content type = %s", contentType)
	}
	if firstName != "Awa" || fileBody != "png-bytes" {
		t.Errorf("form = %q / %q", firstName, fileBody)
	}
	if created.ID != 3 {
		t.Errorf("created id = %d", created.ID)
	}
}

func TestLoginAndNotifications(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["motDePasse"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Identifiants invalides"}`))
				return
			}
			_, _ = w.Write([]byte(`{"token":"abc","utilisateur":{"id":"1","nom":"Bah","prenom":"Mamadou","profil":"Administrateur"}}`))
		case "/api/notifications":
			_, _ = w.Write([]byte(`[{"IDNotification":1,"type":"CREATION","message":"x","is_read":0}]`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}, "")

	ctx := context.Background()
	auth, err := client.Login(ctx, models.Credentials{Login: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth.Token != "abc" || auth.User.Profile != "Administrateur" {
		t.Errorf("auth = %+v", auth)
	}

	if _, err := client.Login(ctx, models.Credentials{Login: "admin", Password: "bad"}); err == nil {
		t.Error("expected login failure")
	}

	items, err := client.Notifications.List(ctx)
	if err != nil || len(items) != 1 || items[0].Read() {
		t.Fatalf("notifications = %+v, err = %v", items, err)
	}
	if err := client.Notifications.MarkRead(ctx, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	if got := seen[len(seen)-1]; got != "PUT /api/notifications/1/read" {
		t.Errorf("last request = %s", got)
	}
}
