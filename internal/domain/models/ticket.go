package models

import "time"

// TicketStatus is a closed set; values outside it never reach the store.
type TicketStatus string

const (
	StatusPendingConfirmation TicketStatus = "pending_confirmation"
	StatusConfirmed           TicketStatus = "confirmed"
	StatusCompleted           TicketStatus = "completed"
	StatusCancelled           TicketStatus = "cancelled"
)

// ParseTicketStatus validates a raw form value.
func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(s) {
	case StatusPendingConfirmation, StatusConfirmed, StatusCompleted, StatusCancelled:
		return TicketStatus(s), true
	}
	return "", false
}

// CanTransition encodes the dispatcher-driven state machine:
//
//	pending_confirmation -> confirmed -> completed
//	any state            -> cancelled   (dispatcher override)
//
// Cancelled is terminal.
func (s TicketStatus) CanTransition(next TicketStatus) bool {
	switch s {
	case StatusPendingConfirmation:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCompleted:
		return next == StatusCancelled
	default:
		return false
	}
}

// Live reports whether the ticket still holds a seat.
func (s TicketStatus) Live() bool {
	return s == StatusPendingConfirmation || s == StatusConfirmed
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Ticket is one sold seat on a trip. TicketNumber is the printed 3-digit
// identifier, unique across the whole system; it is a zero-padded string
// ("001".."999") because the printed format is an external contract.
type Ticket struct {
	ID             int64         `json:"id"`
	TicketNumber   string        `json:"ticket_number"`
	TripID         int64         `json:"trip_id"`
	PassengerName  string        `json:"passenger_name"`
	PassengerPhone string        `json:"passenger_phone"`
	BoardingPoint  string        `json:"boarding_point"`
	Status         TicketStatus  `json:"status"`
	StatusReason   string        `json:"status_reason"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	PaymentAmount  int64         `json:"payment_amount"`
	IsOpenDate     bool          `json:"is_open_date"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
