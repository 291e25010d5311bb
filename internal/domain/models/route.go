package models

import (
	"strings"
	"time"
)

// Route is a published bus line. It owns its schedules: deleting a route
// removes them in the same transaction.
type Route struct {
	ID          int64     `json:"id"`
	RouteNumber string    `json:"route_number"`
	RouteName   string    `json:"route_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Schedule is one recurring departure on a route. DaysOfWeek is stored as
// a comma-separated list of lowercase weekday tags ("mon,tue,...").
type Schedule struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route_id"`
	DepartureTime string    `json:"departure_time"` // HH:MM
	ArrivalTime   string    `json:"arrival_time"`   // HH:MM
	DepartureStop string    `json:"departure_stop"`
	ArrivalStop   string    `json:"arrival_stop"`
	DaysOfWeek    string    `json:"days_of_week"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var weekdayTags = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// JoinDays normalizes a set of weekday tags into the stored CSV form,
// dropping anything that is not a known tag.
func JoinDays(days []string) string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if weekdayTags[d] {
			out = append(out, d)
		}
	}
	return strings.Join(out, ",")
}

// SplitDays returns the weekday tags of a stored CSV value.
func SplitDays(csv string) []string {
	out := []string{}
	for _, d := range strings.Split(csv, ",") {
		d = strings.TrimSpace(d)
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
