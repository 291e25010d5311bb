package repositories

import (
	"database/sql"

	"busdesk/internal/domain/models"
)

// AdminRepository wraps DB access for the schedule publisher accounts.
type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) GetByUsername(username string) (models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM admins
		WHERE username = ?
	`, username).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

func (r AdminRepository) GetByID(id int64) (models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM admins
		WHERE id = ?
	`, id).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

// Exists reports whether the username or email is already registered.
func (r AdminRepository) Exists(username, email string) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM admins WHERE username = ? OR email = ?
	`, username, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r AdminRepository) Create(a models.Admin) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO admins (username, email, password_hash)
		VALUES (?, ?, ?)
	`, a.Username, a.Email, a.PasswordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
