package db

import "database/sql"

// EnsureSchema creates every table the two deployments share. Statements
// are idempotent so both binaries can run it at startup against the same
// database.
func EnsureSchema(conn *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := conn.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS admins (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_admin_username (username),
	UNIQUE KEY uniq_admin_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS dispatchers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	is_super TINYINT(1) NOT NULL DEFAULT 0,
	is_approved TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_dispatcher_username (username),
	UNIQUE KEY uniq_dispatcher_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_number VARCHAR(50) NOT NULL,
	route_name VARCHAR(255) NOT NULL,
	description TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_route_number (route_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS schedules (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	departure_time VARCHAR(5) NOT NULL,
	arrival_time VARCHAR(5) NOT NULL,
	departure_stop VARCHAR(255) NOT NULL,
	arrival_stop VARCHAR(255) NOT NULL,
	days_of_week VARCHAR(50) NOT NULL DEFAULT '',
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_schedule_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS trips (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	departure_city VARCHAR(255) NOT NULL,
	arrival_city VARCHAR(255) NOT NULL,
	departure_date VARCHAR(10) NOT NULL,
	departure_time VARCHAR(5) NOT NULL,
	arrival_time VARCHAR(5) NOT NULL,
	bus_number VARCHAR(50) NOT NULL DEFAULT '',
	bus_name VARCHAR(255) NOT NULL DEFAULT '',
	bus_color VARCHAR(50) NOT NULL DEFAULT '',
	total_seats INT NOT NULL,
	available_seats INT NOT NULL,
	price BIGINT NOT NULL DEFAULT 0,
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS tickets (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	ticket_number CHAR(3) NOT NULL,
	trip_id BIGINT NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_phone VARCHAR(100) NOT NULL DEFAULT '',
	boarding_point VARCHAR(255) NOT NULL DEFAULT '',
	status VARCHAR(30) NOT NULL DEFAULT 'pending_confirmation',
	status_reason VARCHAR(255) NOT NULL DEFAULT '',
	payment_status VARCHAR(20) NOT NULL DEFAULT 'unpaid',
	payment_amount BIGINT NOT NULL DEFAULT 0,
	is_open_date TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_ticket_number (ticket_number),
	KEY idx_ticket_trip (trip_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}
