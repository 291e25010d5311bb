package repositories

import "database/sql"

// Querier is satisfied by both *sql.DB and *sql.Tx so repository methods
// that must run inside a booking/cascade transaction take it explicitly.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
