package models

import "time"

// Trip is a sellable departure with its own seat inventory. The invariant
// 0 <= AvailableSeats <= TotalSeats holds at all times; both counters only
// move inside booking/cancellation transactions.
type Trip struct {
	ID             int64     `json:"id"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureDate  string    `json:"departure_date"` // YYYY-MM-DD
	DepartureTime  string    `json:"departure_time"` // HH:MM
	ArrivalTime    string    `json:"arrival_time"`   // HH:MM
	BusNumber      string    `json:"bus_number"`
	BusName        string    `json:"bus_name"`
	BusColor       string    `json:"bus_color"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	Price          int64     `json:"price"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Sold is the number of seats already taken.
func (t Trip) Sold() int {
	return t.TotalSeats - t.AvailableSeats
}

// RecomputeAvailable returns the available count after a capacity change,
// preserving already-sold seats. Shrinking capacity below the sold count
// floors at zero, never negative.
func RecomputeAvailable(newTotal, sold int) int {
	avail := newTotal - sold
	if avail < 0 {
		return 0
	}
	return avail
}
