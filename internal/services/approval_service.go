package services

import (
	"database/sql"
	"errors"
	"strconv"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/repositories"
	"busdesk/internal/utils"
)

// ApprovalService gates new dispatcher accounts: they register into the
// unapproved state and stay out of the console until a super dispatcher
// approves them. Rejection deletes the account, it is not a soft state.
type ApprovalService struct {
	Dispatchers repositories.DispatcherRepository
	RequestID   string
}

type DispatcherRegistration struct {
	Username string
	Email    string
	Phone    string
	Password string
}

func (s ApprovalService) Register(in DispatcherRegistration) (models.Dispatcher, error) {
	in.Username = utils.NormalizeUsername(in.Username)
	in.Email = utils.NormalizeUsername(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return models.Dispatcher{}, domain.ValidationError{Msg: "username, email and password are required"}
	}

	taken, err := s.Dispatchers.Exists(in.Username, in.Email)
	if err != nil {
		return models.Dispatcher{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.Dispatcher{}, domain.ConflictError{Resource: "dispatcher", Msg: "username or email already registered"}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return models.Dispatcher{}, domain.InternalError{Err: err}
	}

	d := models.Dispatcher{
		Username:     in.Username,
		Email:        in.Email,
		Phone:        utils.TrimOrEmpty(in.Phone),
		PasswordHash: hash,
		IsSuper:      false,
		IsApproved:   false,
	}
	id, err := s.Dispatchers.Create(d)
	if err != nil {
		return models.Dispatcher{}, domain.InternalError{Err: err}
	}
	d.ID = id

	utils.LogEvent(s.RequestID, "approval", "register", "dispatcher="+d.Username)
	return d, nil
}

// Approve flips the target into the approved state. Only a super
// dispatcher may decide; approving twice is harmless.
func (s ApprovalService) Approve(actor models.Dispatcher, targetID int64) error {
	if actor.Role() != models.RoleSuper {
		return domain.ForbiddenError{Msg: "only a super dispatcher can approve accounts"}
	}

	target, err := s.Dispatchers.GetByID(targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "dispatcher"}
		}
		return domain.InternalError{Err: err}
	}
	if target.IsApproved || target.IsSuper {
		return nil
	}

	if err := s.Dispatchers.SetApproved(targetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "dispatcher"}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "approval", "approve",
		"actor="+actor.Username+" target_id="+strconv.FormatInt(targetID, 10))
	return nil
}

// Reject deletes the pending account outright. A later login with the
// same username fails as unauthenticated, not as pending.
func (s ApprovalService) Reject(actor models.Dispatcher, targetID int64) error {
	if actor.Role() != models.RoleSuper {
		return domain.ForbiddenError{Msg: "only a super dispatcher can reject accounts"}
	}

	if err := s.Dispatchers.Delete(targetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "dispatcher"}
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "approval", "reject",
		"actor="+actor.Username+" target_id="+strconv.FormatInt(targetID, 10))
	return nil
}

// ListPending shows the approval queue to super dispatchers only.
func (s ApprovalService) ListPending(actor models.Dispatcher) ([]models.Dispatcher, error) {
	if actor.Role() != models.RoleSuper {
		return nil, domain.ForbiddenError{Msg: "only a super dispatcher can list pending accounts"}
	}
	pending, err := s.Dispatchers.ListPending()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return pending, nil
}
