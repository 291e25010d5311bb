package repositories

import (
	"database/sql"

	"busdesk/internal/db"
	"busdesk/internal/domain/models"
)

// RouteRepository wraps DB access for published routes. Routes own their
// schedules; DeleteCascade removes both inside one transaction.
type RouteRepository struct {
	DB *sql.DB
}

const routeColumns = `id, route_number, route_name, description, created_at, updated_at`

func (r RouteRepository) List() ([]models.Route, error) {
	rows, err := r.DB.Query(`SELECT ` + routeColumns + ` FROM routes ORDER BY route_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		var desc sql.NullString
		if err := rows.Scan(&rt.ID, &rt.RouteNumber, &rt.RouteName, &desc,
			&rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		rt.Description = desc.String
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	var rt models.Route
	var desc sql.NullString
	err := r.DB.QueryRow(`
		SELECT `+routeColumns+` FROM routes WHERE id = ?
	`, id).Scan(&rt.ID, &rt.RouteNumber, &rt.RouteName, &desc, &rt.CreatedAt, &rt.UpdatedAt)
	rt.Description = desc.String
	return rt, err
}

// NumberExists reports whether a route already uses the number.
func (r RouteRepository) NumberExists(routeNumber string) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM routes WHERE route_number = ?
	`, routeNumber).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r RouteRepository) Create(rt models.Route) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO routes (route_number, route_name, description)
		VALUES (?, ?, ?)
	`, rt.RouteNumber, rt.RouteName, db.NullIfEmpty(rt.Description))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteCascade removes the route and all its schedules as a unit so no
// orphan schedule rows can survive a partial failure.
func (r RouteRepository) DeleteCascade(id int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM schedules WHERE route_id = ?`, id); err != nil {
		return err
	}

	res, err := tx.Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}
