package hotel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mamadbah2/hotel-admin/internal/cache"
	"github.com/mamadbah2/hotel-admin/internal/config"
	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/billing"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

// fakeAPI serves canned JSON per "METHOD /path" and records requests.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	requests  []string
	bodies    map[string]map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	f.mu.Lock()
	f.requests = append(f.requests, key)
	var body map[string]any
	if r.Body != nil && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.bodies[key] = body
	}
	resp, ok := f.responses[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Ressource introuvable"}`))
		return
	}
	_, _ = w.Write([]byte(resp))
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, k := range f.requests {
		if k == key {
			n++
		}
	}
	return n
}

func newTestService(t *testing.T, responses map[string]string) (*Service, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{responses: responses, bodies: map[string]map[string]any{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	client := hotelapi.NewClient(config.HotelAPIConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}, nil)
	svc := NewService(client, cache.NewMemory(0), nil)
	svc.now = func() time.Time { return time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC) }
	return svc, api
}

func TestRoomListIsCachedUntilWrite(t *testing.T) {
	svc, api := newTestService(t, map[string]string{
		"GET /chambres":  `[{"IDChambre":1,"numero_Chambre":"101","tarif":50000,"IDstatusChambre":1}]`,
		"POST /chambres": `{"IDChambre":2,"numero_Chambre":"102","tarif":60000,"IDstatusChambre":1}`,
	})
	ctx := hotelapi.WithToken(context.Background(), "user-token")

	for i := 0; i < 3; i++ {
		if _, err := svc.Rooms.List(ctx); err != nil {
			t.Fatalf("List: %v", err)
		}
	}
	if n := api.count("GET /chambres"); n != 1 {
		t.Fatalf("upstream list calls = %d, want 1", n)
	}

	if _, err := svc.Rooms.Create(ctx, models.Room{Number: "102", Rate: models.AmountFromInt(60000), StatusID: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Rooms.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if n := api.count("GET /chambres"); n != 2 {
		t.Errorf("upstream list calls after write = %d, want 2", n)
	}
}

func TestAnonymousListBypassesWarmCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Token manquant"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"IDChambre":1,"numero_Chambre":"101","tarif":50000,"IDstatusChambre":1}]`))
	}))
	t.Cleanup(srv.Close)

	client := hotelapi.NewClient(config.HotelAPIConfig{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}, nil)
	svc := NewService(client, cache.NewMemory(0), nil)

	rooms, err := svc.Rooms.List(hotelapi.WithToken(context.Background(), "good"))
	if err != nil || len(rooms) != 1 {
		t.Fatalf("authorized list = %+v, %v", rooms, err)
	}

	rooms, err = svc.Rooms.List(context.Background())
	var apiErr *hotelapi.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous list = %+v, %v; want 401", rooms, err)
	}
}

func TestRoomValidation(t *testing.T) {
	svc, api := newTestService(t, map[string]string{})
	_, err := svc.Rooms.Create(context.Background(), models.Room{Rate: models.AmountFromInt(10)})
	if !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(api.requests) != 0 {
		t.Errorf("invalid room reached the API: %v", api.requests)
	}
}

func TestCreateReservationFillsRateFromRoom(t *testing.T) {
	svc, api := newTestService(t, map[string]string{
		"GET /chambres/4":    `{"IDChambre":4,"numero_Chambre":"201","tarif":"50000","IDstatusChambre":1}`,
		"POST /reservations": `{"IDReservation":12}`,
	})

	in := models.Reservation{
		ClientName: "Jean Dupont",
		CheckIn:    models.DateOf(2026, time.January, 20),
		CheckOut:   models.DateOf(2026, time.January, 23),
		RoomID:     4,
		Paid:       models.AmountFromInt(20000),
	}
	created, err := svc.CreateReservation(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if created.ID != 12 {
		t.Errorf("created id = %d", created.ID)
	}

	body := api.bodies["POST /reservations"]
	if body["duree"] != float64(3) || body["PUChambre"] != float64(50000) {
		t.Errorf("nights/rate = %v/%v", body["duree"], body["PUChambre"])
	}
	if body["montant_total"] != float64(150000) || body["reste_a_payer"] != float64(130000) {
		t.Errorf("total/remainder = %v/%v", body["montant_total"], body["reste_a_payer"])
	}
	if body["date_dossier"] != "2026-01-20" {
		t.Errorf("file date = %v", body["date_dossier"])
	}
	if _, ok := body["numero_Chambre"]; ok {
		t.Errorf("room number sent upstream: %v", body["numero_Chambre"])
	}
}

func TestCreateReservationRejectsInvertedRange(t *testing.T) {
	svc, api := newTestService(t, map[string]string{})
	_, err := svc.CreateReservation(context.Background(), models.Reservation{
		ClientName: "X",
		CheckIn:    models.DateOf(2026, time.January, 23),
		CheckOut:   models.DateOf(2026, time.January, 20),
		RoomID:     1,
		RoomRate:   models.AmountFromInt(100),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(api.requests) != 0 {
		t.Errorf("invalid reservation reached the API: %v", api.requests)
	}
}

func TestGetReservationNotFound(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{})
	_, err := svc.GetReservation(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var apiErr *hotelapi.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("api error not preserved: %v", err)
	}
}

func TestPurchaseAmountComputed(t *testing.T) {
	svc, api := newTestService(t, map[string]string{
		"POST /achats": `{"IDAchat":1}`,
	})
	_, err := svc.Purchases.Create(context.Background(), models.Purchase{
		Product:   "Savon",
		Quantity:  models.AmountFromInt(4),
		UnitPrice: models.NewAmount(2.5),
		UnitID:    1,
		Unit:      &models.Unit{ID: 1, Label: "pièce"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	body := api.bodies["POST /achats"]
	if body["montant"] != float64(10) {
		t.Errorf("montant = %v", body["montant"])
	}
	if _, ok := body["uniter"]; ok {
		t.Error("nested unit should not be sent")
	}
}

func TestEditForm(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"GET /chambres":        `[{"IDChambre":1,"numero_Chambre":"101"}]`,
		"GET /status-chambres": `[{"idStatus":1,"libele":"Disponible"}]`,
		"GET /reservations/5":  `{"IDReservation":5,"nom_client":"Awa"}`,
	})
	form, err := svc.EditForm(context.Background(), 5)
	if err != nil {
		t.Fatalf("EditForm: %v", err)
	}
	if form.Reservation.ClientName != "Awa" || len(form.Rooms) != 1 || len(form.Statuses) != 1 {
		t.Errorf("form = %+v", form)
	}
}

func TestSummarizeClients(t *testing.T) {
	reservations := []models.Reservation{
		{ClientName: "Awa Diallo", CheckIn: models.DateOf(2026, time.January, 2), Total: models.AmountFromInt(100), Remainder: models.Zero},
		{ClientName: "awa diallo ", CheckIn: models.DateOf(2026, time.March, 2), Total: models.AmountFromInt(50), Remainder: models.AmountFromInt(20)},
		{ClientName: "Moussa", CheckIn: models.DateOf(2026, time.February, 1), Total: models.AmountFromInt(10)},
		{ClientName: "  "},
	}
	got := SummarizeClients(reservations)
	if len(got) != 2 {
		t.Fatalf("clients = %+v", got)
	}
	awa := got[0]
	if awa.Name != "Awa Diallo" || awa.Reservations != 2 {
		t.Errorf("first client = %+v", awa)
	}
	if !awa.TotalBilled.Equal(models.AmountFromInt(150)) || !awa.Outstanding.Equal(models.AmountFromInt(20)) {
		t.Errorf("amounts = %s / %s", awa.TotalBilled, awa.Outstanding)
	}
	if !awa.LastVisit.SameDay(models.DateOf(2026, time.March, 2)) {
		t.Errorf("last visit = %s", awa.LastVisit)
	}
}

func TestDayMovements(t *testing.T) {
	day := models.DateOf(2026, time.January, 26)
	rooms := []models.Room{{ID: 1, Number: "101"}}
	reservations := []models.Reservation{
		{ID: 1, RoomID: 1, CheckIn: day, CheckOut: models.DateOf(2026, time.January, 28)},
		{ID: 2, RoomID: 1, CheckIn: models.DateOf(2026, time.January, 24), CheckOut: day, Remainder: models.AmountFromInt(500)},
		{ID: 3, RoomID: 2, CheckIn: models.DateOf(2026, time.January, 20), CheckOut: day, RoomNumber: "305"},
		{ID: 4, RoomID: 1, CheckIn: models.DateOf(2026, time.January, 1), CheckOut: models.DateOf(2026, time.January, 3)},
	}

	got := DayMovements(reservations, rooms, day)
	if len(got.Arrivals) != 1 || got.Arrivals[0].RoomNumber != "101" {
		t.Errorf("arrivals = %+v", got.Arrivals)
	}
	if len(got.Departures) != 2 || got.PendingPayments != 1 {
		t.Errorf("departures = %+v, pending = %d", got.Departures, got.PendingPayments)
	}
	if got.Departures[1].RoomNumber != "305" {
		t.Errorf("unknown room should keep the API room number, got %q", got.Departures[1].RoomNumber)
	}
}

func TestBuildDirectory(t *testing.T) {
	users := []models.User{
		{ID: 1, FirstName: "Mamadou", ProfileID: 1, Password: "hash"},
		{ID: 2, FirstName: "Awa", ProfileID: 2},
		{ID: 3, FirstName: "Ibrahima", ProfileID: 1},
	}
	profiles := []models.Profile{{ID: 1, Label: "Administrateur"}, {ID: 2, Label: "Réceptionniste"}}

	dir := BuildDirectory(users, profiles)
	if dir.Admins != 2 || len(dir.Users) != 3 {
		t.Fatalf("directory = %+v", dir)
	}
	if dir.Users[0].Password != "" {
		t.Error("password leaked")
	}
	if dir.Users[1].ProfileLabel != "Réceptionniste" {
		t.Errorf("profile label = %q", dir.Users[1].ProfileLabel)
	}

	if found := FilterUsers(dir.Users, "AWA"); len(found) != 1 || found[0].ID != 2 {
		t.Errorf("filter = %+v", found)
	}
}

func TestCreateUserRequiresPassword(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{})
	_, err := svc.CreateUser(context.Background(), models.User{FirstName: "A", LastName: "B", ProfileID: 1}, nil)
	if !errors.Is(err, billing.ErrValidation) || !strings.Contains(err.Error(), "mot de passe") {
		t.Fatalf("err = %v", err)
	}
}

func TestViewNotificationResolvesEntity(t *testing.T) {
	svc, api := newTestService(t, map[string]string{
		"GET /notifications": `[
			{"IDNotification":1,"type":"CREATION","message":"Nouvelle réservation","is_read":0,"entity_type":"reservation","entity_id":7},
			{"IDNotification":2,"type":"MODIFICATION","message":"Chambre modifiée","is_read":1,"entity_type":"chambre","entity_id":3}
		]`,
		"PUT /notifications/1/read": `{}`,
		"GET /reservations/7":       `{"IDReservation":7,"nom_client":"Fatou Camara"}`,
		"GET /chambres/3":           `{"IDChambre":3,"numero_Chambre":"103"}`,
	})
	ctx := context.Background()

	feed, err := svc.Notifications(ctx)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if feed.Unread != 1 || len(feed.Items) != 2 {
		t.Errorf("feed = %+v", feed)
	}

	detail, err := svc.ViewNotification(ctx, 1)
	if err != nil {
		t.Fatalf("ViewNotification: %v", err)
	}
	if detail.EntityName != "Fatou Camara" || !detail.Read() {
		t.Errorf("detail = %+v", detail)
	}
	if api.count("PUT /notifications/1/read") != 1 {
		t.Error("unread notification was not marked read")
	}

	detail, err = svc.ViewNotification(ctx, 2)
	if err != nil {
		t.Fatalf("ViewNotification: %v", err)
	}
	if detail.EntityName != "Chambre 103" {
		t.Errorf("entity name = %q", detail.EntityName)
	}
	if api.count("PUT /notifications/2/read") != 0 {
		t.Error("read notification should not be marked again")
	}

	if _, err := svc.ViewNotification(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing notification err = %v", err)
	}
}

func TestFilters(t *testing.T) {
	purchases := []models.Purchase{
		{Product: "Savon", Observation: "lot de 10"},
		{Product: "Riz", Observation: "cuisine"},
	}
	if got := FilterPurchases(purchases, " CUIS "); len(got) != 1 || got[0].Product != "Riz" {
		t.Errorf("purchases = %+v", got)
	}
	if got := FilterPurchases(purchases, ""); len(got) != 2 {
		t.Errorf("empty term should keep everything, got %d", len(got))
	}

	statuses := []models.RoomStatus{{Label: "Disponible"}, {Label: "Occupée"}}
	if got := FilterStatuses(statuses, "dispo"); len(got) != 1 {
		t.Errorf("statuses = %+v", got)
	}
	if got := FilterProfiles([]models.Profile{{Label: "Administrateur"}}, "x"); len(got) != 0 {
		t.Errorf("profiles = %+v", got)
	}
}
