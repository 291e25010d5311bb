package repositories

import (
	"database/sql"

	"busdesk/internal/domain/models"
)

// TicketRepository wraps DB access for sold seats. Inserts and the
// cancellation read run on the caller's transaction.
type TicketRepository struct {
	DB *sql.DB
}

const ticketColumns = `id, ticket_number, trip_id, passenger_name, passenger_phone, boarding_point,
		status, status_reason, payment_status, payment_amount, is_open_date, created_at, updated_at`

func scanTicket(row *sql.Row) (models.Ticket, error) {
	var t models.Ticket
	err := row.Scan(&t.ID, &t.TicketNumber, &t.TripID, &t.PassengerName, &t.PassengerPhone,
		&t.BoardingPoint, &t.Status, &t.StatusReason, &t.PaymentStatus, &t.PaymentAmount,
		&t.IsOpenDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r TicketRepository) GetByID(id int64) (models.Ticket, error) {
	return scanTicket(r.DB.QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id))
}

// GetForUpdate locks the ticket row inside a status transition.
func (r TicketRepository) GetForUpdate(q Querier, id int64) (models.Ticket, error) {
	return scanTicket(q.QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE id = ? FOR UPDATE`, id))
}

func (r TicketRepository) ListByTrip(tripID int64) ([]models.Ticket, error) {
	rows, err := r.DB.Query(`
		SELECT `+ticketColumns+` FROM tickets
		WHERE trip_id = ?
		ORDER BY ticket_number
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.TicketNumber, &t.TripID, &t.PassengerName, &t.PassengerPhone,
			&t.BoardingPoint, &t.Status, &t.StatusReason, &t.PaymentStatus, &t.PaymentAmount,
			&t.IsOpenDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UsedNumbers returns every ticket number currently held, system-wide.
// The booking transaction scans this set for the lowest free slot.
func (r TicketRepository) UsedNumbers(q Querier) (map[string]bool, error) {
	rows, err := q.Query(`SELECT ticket_number FROM tickets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := map[string]bool{}
	for rows.Next() {
		var num string
		if err := rows.Scan(&num); err != nil {
			return nil, err
		}
		used[num] = true
	}
	return used, rows.Err()
}

// Insert writes a fresh ticket on the booking transaction. The unique key
// on ticket_number backstops the allocation scan.
func (r TicketRepository) Insert(q Querier, t models.Ticket) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO tickets (ticket_number, trip_id, passenger_name, passenger_phone, boarding_point,
			status, status_reason, payment_status, payment_amount, is_open_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.TicketNumber, t.TripID, t.PassengerName, t.PassengerPhone, t.BoardingPoint,
		t.Status, t.StatusReason, t.PaymentStatus, t.PaymentAmount, t.IsOpenDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus persists a checked transition.
func (r TicketRepository) UpdateStatus(q Querier, id int64, status models.TicketStatus, reason string) error {
	res, err := q.Exec(`
		UPDATE tickets SET status = ?, status_reason = ? WHERE id = ?
	`, status, reason, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePayment marks the ticket paid/refunded with the settled amount.
func (r TicketRepository) UpdatePayment(id int64, status models.PaymentStatus, amount int64) error {
	res, err := r.DB.Exec(`
		UPDATE tickets SET payment_status = ?, payment_amount = ? WHERE id = ?
	`, status, amount, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
