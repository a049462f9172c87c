package models

import (
	"sort"
	"strings"
)

// Room is a bookable hotel room.
type Room struct {
	ID       int64  `json:"IDChambre,omitempty"`
	Number   string `json:"numero_Chambre"`
	Rate     Amount `json:"tarif"`
	StatusID int64  `json:"IDstatusChambre"`
}

// RoomStatus is a free-text room state such as "Disponible" or "Occupée".
type RoomStatus struct {
	ID    int64  `json:"idStatus,omitempty"`
	Label string `json:"libele"`
}

// Reservation is a room booking with its billing fields.
type Reservation struct {
	ID         int64  `json:"IDReservation,omitempty"`
	FileDate   Date   `json:"date_dossier"`
	ClientName string `json:"nom_client"`
	CheckIn    Date   `json:"date_entree"`
	CheckOut   Date   `json:"date_sortie"`
	RoomID     int64  `json:"IDChambre"`
	RoomRate   Amount `json:"PUChambre"`
	Nights     int    `json:"duree"`
	Total      Amount `json:"montant_total"`
	Paid       Amount `json:"montant_paye"`
	Remainder  Amount `json:"reste_a_payer"`
	Notes      string `json:"informations_complementaires,omitempty"`
	RoomNumber string `json:"numero_Chambre,omitempty"`
}

// Unit is a unit of measure for purchases.
type Unit struct {
	ID    int64  `json:"IDUniter,omitempty"`
	Label string `json:"libelle"`
}

// Purchase is a supply purchase ("achat").
type Purchase struct {
	ID          int64  `json:"IDAchat,omitempty"`
	Date        Date   `json:"date_achat"`
	Product     string `json:"produit"`
	Quantity    Amount `json:"quantite"`
	UnitPrice   Amount `json:"PU"`
	UnitID      int64  `json:"IDUniter"`
	Unit        *Unit  `json:"uniter,omitempty"`
	Amount      Amount `json:"montant"`
	Observation string `json:"observation,omitempty"`
}

// Total returns the stored amount, or quantity times unit price when the API
// did not send one.
func (p Purchase) Total() Amount {
	if !p.Amount.IsZero() {
		return p.Amount
	}
	return p.Quantity.Mul(p.UnitPrice)
}

// Profile is a user role label.
type Profile struct {
	ID    int64  `json:"IDprofil,omitempty"`
	Label string `json:"libele"`
}

// User is a back-office account.
type User struct {
	ID        int64  `json:"IDutilisateur,omitempty"`
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
	ProfileID int64  `json:"IDprofil"`
	Password  string `json:"mot_de_passe,omitempty"`
	Image     string `json:"image,omitempty"`
}

// FullName is "<prenom> <nom>".
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Notification types emitted by the API.
const (
	NotificationCreation     = "CREATION"
	NotificationModification = "MODIFICATION"
	NotificationDeletion     = "SUPPRESSION"
	NotificationWarning      = "WARNING"
)

// Notification is an activity entry produced by the API.
type Notification struct {
	ID         int64  `json:"IDNotification"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	CreatedAt  string `json:"date_creation"`
	IsRead     int    `json:"is_read"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   int64  `json:"entity_id,omitempty"`
}

// Read reports whether the notification was already seen.
func (n Notification) Read() bool { return n.IsRead != 0 }

// Credentials is the login payload.
type Credentials struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"motDePasse" binding:"required"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  struct {
		ID        string `json:"id"`
		LastName  string `json:"nom"`
		FirstName string `json:"prenom"`
		Email     string `json:"email"`
		Profile   string `json:"profil"`
	} `json:"utilisateur"`
}

// RoomIndex maps room IDs to rooms.
func RoomIndex(rooms []Room) map[int64]Room {
	idx := make(map[int64]Room, len(rooms))
	for _, r := range rooms {
		idx[r.ID] = r
	}
	return idx
}

// StatusIndex maps status IDs to labels.
func StatusIndex(statuses []RoomStatus) map[int64]string {
	idx := make(map[int64]string, len(statuses))
	for _, s := range statuses {
		idx[s.ID] = s.Label
	}
	return idx
}

// ProfileIndex maps profile IDs to labels.
func ProfileIndex(profiles []Profile) map[int64]string {
	idx := make(map[int64]string, len(profiles))
	for _, p := range profiles {
		idx[p.ID] = p.Label
	}
	return idx
}

// SortRooms orders rooms by number, shorter numbers first so "9" < "10".
func SortRooms(rooms []Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		a, b := rooms[i].Number, rooms[j].Number
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
}
