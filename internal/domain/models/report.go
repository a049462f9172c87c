package models

import "time"

// DailyReport is the stored snapshot of one day's hotel statistics.
type DailyReport struct {
	Date             time.Time `bson:"date" json:"date"`
	Revenue          float64   `bson:"revenue" json:"revenue"`
	Purchases        float64   `bson:"purchases" json:"purchases"`
	Arrivals         int       `bson:"arrivals" json:"arrivals"`
	Departures       int       `bson:"departures" json:"departures"`
	RoomsTotal       int       `bson:"rooms_total" json:"rooms_total"`
	RoomsOccupied    int       `bson:"rooms_occupied" json:"rooms_occupied"`
	OccupancyRate    float64   `bson:"occupancy_rate" json:"occupancy_rate"`
	PendingPayments  int       `bson:"pending_payments" json:"pending_payments"`
	OutstandingTotal float64   `bson:"outstanding_total" json:"outstanding_total"`
	MonthRevenue     float64   `bson:"month_revenue" json:"month_revenue"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
