package models

import "time"

// Admin is an operator account for the schedule publisher deployment.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// DispatcherRole is the approval state of a dispatcher account. Checks go
// through this value instead of the raw flag pair so an invalid
// combination (super but unapproved) cannot leak into authorization code.
type DispatcherRole int

const (
	RoleUnapproved DispatcherRole = iota
	RoleApproved
	RoleSuper
)

func (r DispatcherRole) String() string {
	switch r {
	case RoleSuper:
		return "super"
	case RoleApproved:
		return "approved"
	default:
		return "unapproved"
	}
}

// Dispatcher is an operator account for the booking deployment. A super
// dispatcher is implicitly approved regardless of the stored flag.
type Dispatcher struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	IsSuper      bool      `json:"is_super"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

func (d Dispatcher) Role() DispatcherRole {
	switch {
	case d.IsSuper:
		return RoleSuper
	case d.IsApproved:
		return RoleApproved
	default:
		return RoleUnapproved
	}
}

// CanAccess reports whether the account may enter protected dispatcher
// pages. Unapproved non-super accounts authenticate but are kept out.
func (d Dispatcher) CanAccess() bool {
	return d.Role() != RoleUnapproved
}
