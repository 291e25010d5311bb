package repositories

import (
	"database/sql"

	"busdesk/internal/domain/models"
)

// DispatcherRepository wraps DB access for booking-system accounts and
// the approval workflow rows.
type DispatcherRepository struct {
	DB *sql.DB
}

const dispatcherColumns = `id, username, email, password_hash, phone, is_super, is_approved, created_at`

func scanDispatcher(row *sql.Row) (models.Dispatcher, error) {
	var d models.Dispatcher
	err := row.Scan(&d.ID, &d.Username, &d.Email, &d.PasswordHash, &d.Phone,
		&d.IsSuper, &d.IsApproved, &d.CreatedAt)
	return d, err
}

func (r DispatcherRepository) GetByUsername(username string) (models.Dispatcher, error) {
	return scanDispatcher(r.DB.QueryRow(`
		SELECT `+dispatcherColumns+` FROM dispatchers WHERE username = ?
	`, username))
}

func (r DispatcherRepository) GetByID(id int64) (models.Dispatcher, error) {
	return scanDispatcher(r.DB.QueryRow(`
		SELECT `+dispatcherColumns+` FROM dispatchers WHERE id = ?
	`, id))
}

// Exists reports whether the username or email is already registered.
func (r DispatcherRepository) Exists(username, email string) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM dispatchers WHERE username = ? OR email = ?
	`, username, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r DispatcherRepository) Create(d models.Dispatcher) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO dispatchers (username, email, password_hash, phone, is_super, is_approved)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.Username, d.Email, d.PasswordHash, d.Phone, d.IsSuper, d.IsApproved)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPending returns accounts waiting for a super dispatcher's decision.
func (r DispatcherRepository) ListPending() ([]models.Dispatcher, error) {
	rows, err := r.DB.Query(`
		SELECT ` + dispatcherColumns + `
		FROM dispatchers
		WHERE is_super = 0 AND is_approved = 0
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Dispatcher{}
	for rows.Next() {
		var d models.Dispatcher
		if err := rows.Scan(&d.ID, &d.Username, &d.Email, &d.PasswordHash, &d.Phone,
			&d.IsSuper, &d.IsApproved, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SetApproved flips the approval flag. sql.ErrNoRows when the target is gone.
func (r DispatcherRepository) SetApproved(id int64) error {
	res, err := r.DB.Exec(`UPDATE dispatchers SET is_approved = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the account outright; rejection is destructive.
func (r DispatcherRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM dispatchers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
