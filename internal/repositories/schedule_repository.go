package repositories

import (
	"database/sql"

	"busdesk/internal/domain/models"
)

// ScheduleRepository wraps DB access for recurring departures on a route.
type ScheduleRepository struct {
	DB *sql.DB
}

const scheduleColumns = `id, route_id, departure_time, arrival_time, departure_stop, arrival_stop, days_of_week, is_active, created_at, updated_at`

func scanSchedules(rows *sql.Rows) ([]models.Schedule, error) {
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime,
			&s.DepartureStop, &s.ArrivalStop, &s.DaysOfWeek, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ScheduleRepository) ListByRoute(routeID int64) ([]models.Schedule, error) {
	rows, err := r.DB.Query(`
		SELECT `+scheduleColumns+` FROM schedules
		WHERE route_id = ?
		ORDER BY departure_time
	`, routeID)
	if err != nil {
		return nil, err
	}
	return scanSchedules(rows)
}

// ListActive feeds the public timetable.
func (r ScheduleRepository) ListActive() ([]models.Schedule, error) {
	rows, err := r.DB.Query(`
		SELECT ` + scheduleColumns + ` FROM schedules
		WHERE is_active = 1
		ORDER BY route_id, departure_time
	`)
	if err != nil {
		return nil, err
	}
	return scanSchedules(rows)
}

func (r ScheduleRepository) GetByID(id int64) (models.Schedule, error) {
	var s models.Schedule
	err := r.DB.QueryRow(`
		SELECT `+scheduleColumns+` FROM schedules WHERE id = ?
	`, id).Scan(&s.ID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime,
		&s.DepartureStop, &s.ArrivalStop, &s.DaysOfWeek, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r ScheduleRepository) Create(s models.Schedule) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO schedules (route_id, departure_time, arrival_time, departure_stop, arrival_stop, days_of_week, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.RouteID, s.DepartureTime, s.ArrivalTime, s.DepartureStop, s.ArrivalStop, s.DaysOfWeek, s.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ScheduleRepository) Delete(id, routeID int64) error {
	res, err := r.DB.Exec(`
		DELETE FROM schedules WHERE id = ? AND route_id = ?
	`, id, routeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
