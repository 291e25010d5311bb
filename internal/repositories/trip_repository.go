package repositories

import (
	"database/sql"

	"busdesk/internal/domain/models"
)

// TripRepository wraps DB access for sellable departures. Seat counters
// are only touched through the guarded statements below, always inside
// the caller's transaction.
type TripRepository struct {
	DB *sql.DB
}

const tripColumns = `id, departure_city, arrival_city, departure_date, departure_time, arrival_time,
		bus_number, bus_name, bus_color, total_seats, available_seats, price, is_active, created_at, updated_at`

func scanTrip(row *sql.Row) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.DepartureCity, &t.ArrivalCity, &t.DepartureDate,
		&t.DepartureTime, &t.ArrivalTime, &t.BusNumber, &t.BusName, &t.BusColor,
		&t.TotalSeats, &t.AvailableSeats, &t.Price, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r TripRepository) List() ([]models.Trip, error) {
	rows, err := r.DB.Query(`SELECT ` + tripColumns + ` FROM trips ORDER BY departure_date, departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.DepartureCity, &t.ArrivalCity, &t.DepartureDate,
			&t.DepartureTime, &t.ArrivalTime, &t.BusNumber, &t.BusName, &t.BusColor,
			&t.TotalSeats, &t.AvailableSeats, &t.Price, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	return scanTrip(r.DB.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id))
}

// GetForUpdate locks the trip row for the duration of the caller's
// transaction. Every seat-counter mutation starts here so concurrent
// bookings against the same trip serialize on the row lock.
func (r TripRepository) GetForUpdate(q Querier, id int64) (models.Trip, error) {
	return scanTrip(q.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ? FOR UPDATE`, id))
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO trips (departure_city, arrival_city, departure_date, departure_time, arrival_time,
			bus_number, bus_name, bus_color, total_seats, available_seats, price, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.DepartureCity, t.ArrivalCity, t.DepartureDate, t.DepartureTime, t.ArrivalTime,
		t.BusNumber, t.BusName, t.BusColor, t.TotalSeats, t.AvailableSeats, t.Price, t.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update persists edited trip fields, including the recomputed seat pair.
func (r TripRepository) Update(q Querier, t models.Trip) error {
	res, err := q.Exec(`
		UPDATE trips
		SET departure_city=?, arrival_city=?, departure_date=?, departure_time=?, arrival_time=?,
			bus_number=?, bus_name=?, bus_color=?, total_seats=?, available_seats=?, price=?, is_active=?
		WHERE id=?
	`, t.DepartureCity, t.ArrivalCity, t.DepartureDate, t.DepartureTime, t.ArrivalTime,
		t.BusNumber, t.BusName, t.BusColor, t.TotalSeats, t.AvailableSeats, t.Price, t.IsActive, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DecrementSeat takes one seat if any is left. Zero rows affected means
// another transaction got the last seat first; callers must roll back.
func (r TripRepository) DecrementSeat(q Querier, id int64) (int64, error) {
	res, err := q.Exec(`
		UPDATE trips
		SET available_seats = available_seats - 1
		WHERE id = ? AND available_seats > 0
	`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RestoreSeat gives one seat back on cancellation, clamped at total_seats.
func (r TripRepository) RestoreSeat(q Querier, id int64) (int64, error) {
	res, err := q.Exec(`
		UPDATE trips
		SET available_seats = available_seats + 1
		WHERE id = ? AND available_seats < total_seats
	`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteCascade removes the trip and every ticket referencing it as a
// unit; a sold seat and its ticket never part ways.
func (r TripRepository) DeleteCascade(id int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tickets WHERE trip_id = ?`, id); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}
