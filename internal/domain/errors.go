package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ForbiddenError marks an authenticated caller without the required
// privilege (e.g. a regular dispatcher calling a super-only action).
type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

// UnauthenticatedError covers bad credentials and missing, malformed or
// expired session tokens alike. Callers must not be able to tell which.
type UnauthenticatedError struct {
	Err error
}

func (e UnauthenticatedError) Error() string { return "unauthenticated" }

func (e UnauthenticatedError) Unwrap() error { return e.Err }

// PendingApprovalError means the credentials verified but the dispatcher
// account has not been approved yet. Distinct from bad credentials on
// purpose: the login form shows a different message.
type PendingApprovalError struct {
	Username string
}

func (e PendingApprovalError) Error() string {
	if e.Username != "" {
		return fmt.Sprintf("account %s is pending approval", e.Username)
	}
	return "account is pending approval"
}

// SoldOutError is returned when a trip has no available seats left.
type SoldOutError struct {
	TripID int64
}

func (e SoldOutError) Error() string {
	return fmt.Sprintf("trip %d is sold out", e.TripID)
}

// NoTicketNumbersError means all 999 printable ticket numbers are taken.
// This is the system-wide capacity ceiling, not a transient condition.
type NoTicketNumbersError struct{}

func (e NoTicketNumbersError) Error() string {
	return "no ticket numbers available"
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsUnauthenticated(err error) bool {
	var target UnauthenticatedError
	return errors.As(err, &target)
}

func IsPendingApproval(err error) bool {
	var target PendingApprovalError
	return errors.As(err, &target)
}

func IsSoldOut(err error) bool {
	var target SoldOutError
	return errors.As(err, &target)
}

func IsNoTicketNumbers(err error) bool {
	var target NoTicketNumbersError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
