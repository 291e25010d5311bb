package services

import (
	"testing"
	"time"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newApprovalService(t *testing.T) (ApprovalService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return ApprovalService{Dispatchers: repositories.DispatcherRepository{DB: db}}, mock
}

var (
	super   = models.Dispatcher{ID: 1, Username: "root", IsSuper: true}
	regular = models.Dispatcher{ID: 2, Username: "bob", IsApproved: true}
)

func TestRegisterStartsUnapproved(t *testing.T) {
	svc, mock := newApprovalService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dispatchers`).WithArgs("carol", "carol@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO dispatchers`).
		WithArgs("carol", "carol@example.com", sqlmock.AnyArg(), "555-0102", false, false).
		WillReturnResult(sqlmock.NewResult(3, 1))

	d, err := svc.Register(DispatcherRegistration{
		Username: "Carol", Email: "carol@example.com", Phone: "555-0102", Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if d.IsApproved || d.IsSuper {
		t.Error("fresh registration must be unapproved and not super")
	}
	if d.Role() != models.RoleUnapproved {
		t.Errorf("role = %s, want unapproved", d.Role())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, mock := newApprovalService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dispatchers`).WithArgs("carol", "carol@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err := svc.Register(DispatcherRegistration{
		Username: "carol", Email: "carol@example.com", Password: "hunter2",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestApproveRequiresSuper(t *testing.T) {
	svc, mock := newApprovalService(t)

	if err := svc.Approve(regular, 3); !domain.IsForbidden(err) {
		t.Fatalf("regular dispatcher approving: want forbidden, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestApprove(t *testing.T) {
	svc, mock := newApprovalService(t)

	mock.ExpectQuery(`FROM dispatchers WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", "x", "", false, false, time.Now()))
	mock.ExpectExec(`UPDATE dispatchers SET is_approved = 1`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Approve(super, 3); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestApproveTwiceIsNoop(t *testing.T) {
	svc, mock := newApprovalService(t)

	mock.ExpectQuery(`FROM dispatchers WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", "x", "", false, true, time.Now()))

	if err := svc.Approve(super, 3); err != nil {
		t.Fatalf("second approval should be harmless, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestApproveMissingTarget(t *testing.T) {
	svc, mock := newApprovalService(t)

	mock.ExpectQuery(`FROM dispatchers WHERE id = \?`).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(dispatcherCols))

	if err := svc.Approve(super, 9); !domain.IsNotFound(err) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestRejectDeletesAccount(t *testing.T) {
	svc, mock := newApprovalService(t)

	mock.ExpectExec(`DELETE FROM dispatchers WHERE id = \?`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Reject(super, 3); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRejectRequiresSuper(t *testing.T) {
	svc, _ := newApprovalService(t)

	if err := svc.Reject(regular, 3); !domain.IsForbidden(err) {
		t.Fatalf("want forbidden, got %v", err)
	}
}

func TestListPending(t *testing.T) {
	svc, mock := newApprovalService(t)

	mock.ExpectQuery(`WHERE is_super = 0 AND is_approved = 0`).
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", "x", "", false, false, time.Now()).
			AddRow(4, "dave", "dave@example.com", "x", "", false, false, time.Now()))

	pending, err := svc.ListPending(super)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("len = %d, want 2", len(pending))
	}
}

// Full account lifecycle: register, gated login, approval, working login.
func TestApprovalLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := repositories.DispatcherRepository{DB: db}
	approvals := ApprovalService{Dispatchers: repo}
	auth := AuthService{Dispatchers: repo, Secret: "test-secret"}

	// register lands unapproved
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dispatchers`).WithArgs("carol", "carol@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO dispatchers`).WillReturnResult(sqlmock.NewResult(3, 1))

	d, err := approvals.Register(DispatcherRegistration{
		Username: "carol", Email: "carol@example.com", Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// login before approval is gated
	mock.ExpectQuery(`FROM dispatchers WHERE username = \?`).WithArgs("carol").
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", d.PasswordHash, "", false, false, time.Now()))

	if _, err := auth.LoginDispatcher("carol", "hunter2"); !domain.IsPendingApproval(err) {
		t.Fatalf("pre-approval login: want pending-approval, got %v", err)
	}

	// super approves
	mock.ExpectQuery(`FROM dispatchers WHERE id = \?`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", d.PasswordHash, "", false, false, time.Now()))
	mock.ExpectExec(`UPDATE dispatchers SET is_approved = 1`).WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := approvals.Approve(super, 3); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// login now works
	mock.ExpectQuery(`FROM dispatchers WHERE username = \?`).WithArgs("carol").
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", d.PasswordHash, "", false, true, time.Now()))

	got, err := auth.LoginDispatcher("carol", "hunter2")
	if err != nil {
		t.Fatalf("post-approval login: %v", err)
	}
	if got.Role() != models.RoleApproved {
		t.Errorf("role = %s, want approved", got.Role())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListPendingRequiresSuper(t *testing.T) {
	svc, _ := newApprovalService(t)

	if _, err := svc.ListPending(regular); !domain.IsForbidden(err) {
		t.Fatalf("want forbidden, got %v", err)
	}
}
