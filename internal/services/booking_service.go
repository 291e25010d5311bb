package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/repositories"
	"busdesk/internal/utils"
)

// BookingService owns the seat inventory rules: ticket-number allocation,
// the seat decrement/restore bookkeeping and the ticket status machine.
// Every multi-step write runs inside a single transaction.
type BookingService struct {
	Trips     repositories.TripRepository
	Tickets   repositories.TicketRepository
	DB        *sql.DB
	RequestID string
}

// BookingInput is the passenger side of a booking form.
type BookingInput struct {
	PassengerName  string
	PassengerPhone string
	BoardingPoint  string
	IsOpenDate     bool
}

// maxTicketNumber is the hard capacity ceiling. Ticket numbers are a
// printed 3-digit artifact, so 999 live tickets system-wide is the
// intended limit, not a rolling window.
const maxTicketNumber = 999

// nextTicketNumber scans "001".."999" for the lowest slot not in use.
// Returns "" when every number is taken.
func nextTicketNumber(used map[string]bool) string {
	for n := 1; n <= maxTicketNumber; n++ {
		candidate := fmt.Sprintf("%03d", n)
		if !used[candidate] {
			return candidate
		}
	}
	return ""
}

// Book sells one seat on a trip. The trip row is locked for the whole
// transaction, so the ticket insert and the seat decrement commit
// together or not at all, and two bookings racing for the last seat
// serialize: the loser sees SoldOutError.
func (s BookingService) Book(tripID int64, in BookingInput) (models.Ticket, error) {
	in.PassengerName = utils.TrimOrEmpty(in.PassengerName)
	if in.PassengerName == "" {
		return models.Ticket{}, domain.ValidationError{Field: "passenger_name", Msg: "name is required"}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	trip, err := s.Trips.GetForUpdate(tx, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	if !trip.IsActive {
		return models.Ticket{}, domain.NotFoundError{Resource: "trip"}
	}
	if trip.AvailableSeats <= 0 {
		return models.Ticket{}, domain.SoldOutError{TripID: tripID}
	}

	used, err := s.Tickets.UsedNumbers(tx)
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	number := nextTicketNumber(used)
	if number == "" {
		return models.Ticket{}, domain.NoTicketNumbersError{}
	}

	ticket := models.Ticket{
		TicketNumber:   number,
		TripID:         tripID,
		PassengerName:  in.PassengerName,
		PassengerPhone: utils.TrimOrEmpty(in.PassengerPhone),
		BoardingPoint:  utils.TrimOrEmpty(in.BoardingPoint),
		Status:         models.StatusPendingConfirmation,
		PaymentStatus:  models.PaymentUnpaid,
		IsOpenDate:     in.IsOpenDate,
	}

	id, err := s.Tickets.Insert(tx, ticket)
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	ticket.ID = id

	n, err := s.Trips.DecrementSeat(tx, tripID)
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	if n == 0 {
		// Lost-update guard: the counter hit zero between the read and
		// the decrement. Roll everything back.
		return models.Ticket{}, domain.SoldOutError{TripID: tripID}
	}

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, domain.InternalError{Msg: "booking transaction failed", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "book",
		"trip_id="+strconv.FormatInt(tripID, 10)+" ticket_number="+number)
	return ticket, nil
}

// Pay marks a ticket paid with the trip price. Paying an already-paid
// ticket is a no-op; completed or cancelled tickets no longer accept
// payment.
func (s BookingService) Pay(ticketID int64) (models.Ticket, error) {
	t, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	if t.PaymentStatus == models.PaymentPaid {
		return t, nil
	}
	if t.Status == models.StatusCompleted || t.Status == models.StatusCancelled {
		return models.Ticket{}, domain.ValidationError{Field: "status", Msg: "ticket no longer accepts payment"}
	}

	trip, err := s.Trips.GetByID(t.TripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	if err := s.Tickets.UpdatePayment(ticketID, models.PaymentPaid, trip.Price); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	t.PaymentStatus = models.PaymentPaid
	t.PaymentAmount = trip.Price
	utils.LogEvent(s.RequestID, "booking", "pay", "ticket_id="+strconv.FormatInt(ticketID, 10))
	return t, nil
}

// UpdateStatus applies one checked transition. Cancelling a live ticket
// hands its seat back in the same transaction, clamped at total_seats.
func (s BookingService) UpdateStatus(ticketID int64, next models.TicketStatus, reason string) (models.Ticket, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	t, err := s.Tickets.GetForUpdate(tx, ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	if !t.Status.CanTransition(next) {
		return models.Ticket{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("cannot move from %s to %s", t.Status, next),
		}
	}

	if err := s.Tickets.UpdateStatus(tx, ticketID, next, utils.TrimOrEmpty(reason)); err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}

	if next == models.StatusCancelled && t.Status.Live() {
		if _, err := s.Trips.RestoreSeat(tx, t.TripID); err != nil {
			return models.Ticket{}, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Ticket{}, domain.InternalError{Msg: "status transaction failed", Err: err}
	}

	t.Status = next
	t.StatusReason = utils.TrimOrEmpty(reason)
	utils.LogEvent(s.RequestID, "booking", "status",
		"ticket_id="+strconv.FormatInt(ticketID, 10)+" status="+string(next))
	return t, nil
}

// CreateTrip opens a departure for sale with a full seat inventory.
func (s BookingService) CreateTrip(t models.Trip) (models.Trip, error) {
	if t.TotalSeats <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "total_seats", Msg: "must be positive"}
	}
	if t.DepartureCity == "" || t.ArrivalCity == "" {
		return models.Trip{}, domain.ValidationError{Msg: "departure and arrival cities are required"}
	}
	t.AvailableSeats = t.TotalSeats

	id, err := s.Trips.Create(t)
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	t.ID = id
	return t, nil
}

// EditTrip rewrites trip fields. The available counter is recomputed from
// the new capacity while preserving seats already sold; shrinking below
// the sold count floors at zero.
func (s BookingService) EditTrip(tripID int64, upd models.Trip) (models.Trip, error) {
	if upd.TotalSeats <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "total_seats", Msg: "must be positive"}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return models.Trip{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	old, err := s.Trips.GetForUpdate(tx, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Trip{}, domain.InternalError{Err: err}
	}

	upd.ID = tripID
	upd.AvailableSeats = models.RecomputeAvailable(upd.TotalSeats, old.Sold())

	if err := s.Trips.Update(tx, upd); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Trip{}, domain.InternalError{Msg: "trip transaction failed", Err: err}
	}
	return upd, nil
}

// DeleteTrip removes the trip and its tickets together.
func (s BookingService) DeleteTrip(tripID int64) error {
	if err := s.Trips.DeleteCascade(tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "trip"}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "delete_trip", "trip_id="+strconv.FormatInt(tripID, 10))
	return nil
}

func (s BookingService) ListTrips() ([]models.Trip, error) {
	trips, err := s.Trips.List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return trips, nil
}

func (s BookingService) GetTrip(tripID int64) (models.Trip, error) {
	t, err := s.Trips.GetByID(tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Trip{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (s BookingService) GetTicket(ticketID int64) (models.Ticket, error) {
	t, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (s BookingService) ListTickets(tripID int64) ([]models.Ticket, error) {
	tickets, err := s.Tickets.ListByTrip(tripID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return tickets, nil
}
