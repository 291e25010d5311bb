package services

import (
	"database/sql"
	"errors"
	"time"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/repositories"
	"busdesk/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Session realms keep the two deployments' tokens apart: an admin token
// never resolves as a dispatcher and vice versa.
const (
	RealmAdmin      = "admin"
	RealmDispatcher = "dispatcher"
)

// dummyHash is compared against when the username does not exist, so the
// failure path costs one bcrypt verification either way.
var dummyHash = func() string {
	h, _ := bcrypt.GenerateFromPassword([]byte("busdesk-dummy"), bcrypt.DefaultCost)
	return string(h)
}()

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// AuthService verifies credentials and issues/resolves the signed session
// token carried by the access_token cookie. Tokens are stateless; resolve
// re-reads the subject from the store so a deleted account invalidates
// outstanding tokens.
type AuthService struct {
	Admins      repositories.AdminRepository
	Dispatchers repositories.DispatcherRepository
	Secret      string
	TTL         time.Duration
}

const DefaultSessionTTL = 30 * time.Minute

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// AuthenticateAdmin checks credentials for the schedule publisher.
func (s AuthService) AuthenticateAdmin(username, password string) (models.Admin, error) {
	username = utils.NormalizeUsername(username)

	a, err := s.Admins.GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			VerifyPassword(dummyHash, password)
			return models.Admin{}, domain.UnauthenticatedError{}
		}
		return models.Admin{}, domain.InternalError{Err: err}
	}
	if !VerifyPassword(a.PasswordHash, password) {
		return models.Admin{}, domain.UnauthenticatedError{}
	}
	return a, nil
}

// AuthenticateDispatcher checks credentials only; the approval gate is a
// separate decision so callers can distinguish the pending case.
func (s AuthService) AuthenticateDispatcher(username, password string) (models.Dispatcher, error) {
	username = utils.NormalizeUsername(username)

	d, err := s.Dispatchers.GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			VerifyPassword(dummyHash, password)
			return models.Dispatcher{}, domain.UnauthenticatedError{}
		}
		return models.Dispatcher{}, domain.InternalError{Err: err}
	}
	if !VerifyPassword(d.PasswordHash, password) {
		return models.Dispatcher{}, domain.UnauthenticatedError{}
	}
	return d, nil
}

// LoginDispatcher is the protected-console entry: valid credentials on an
// unapproved, non-super account yield PendingApprovalError, not a session.
func (s AuthService) LoginDispatcher(username, password string) (models.Dispatcher, error) {
	d, err := s.AuthenticateDispatcher(username, password)
	if err != nil {
		return models.Dispatcher{}, err
	}
	if !d.CanAccess() {
		return models.Dispatcher{}, domain.PendingApprovalError{Username: d.Username}
	}
	return d, nil
}

// RegisterAdmin creates a publisher account; admins need no approval.
func (s AuthService) RegisterAdmin(username, email, password string) (models.Admin, error) {
	username = utils.NormalizeUsername(username)
	email = utils.NormalizeUsername(email)
	if username == "" || email == "" || password == "" {
		return models.Admin{}, domain.ValidationError{Msg: "username, email and password are required"}
	}

	taken, err := s.Admins.Exists(username, email)
	if err != nil {
		return models.Admin{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.Admin{}, domain.ConflictError{Resource: "admin", Msg: "username or email already registered"}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.Admin{}, domain.InternalError{Err: err}
	}

	a := models.Admin{Username: username, Email: email, PasswordHash: hash}
	id, err := s.Admins.Create(a)
	if err != nil {
		return models.Admin{}, domain.InternalError{Err: err}
	}
	a.ID = id
	return a, nil
}

// IssueSession signs an HS256 token binding the subject to a realm with
// the configured TTL (30 minutes by default).
func (s AuthService) IssueSession(subject, realm string) (string, time.Time, error) {
	return s.issueSessionAt(subject, realm, time.Now().UTC())
}

func (s AuthService) issueSessionAt(subject, realm string, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.ttl())
	claims := jwt.MapClaims{
		"sub":   subject,
		"realm": realm,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, domain.InternalError{Err: err}
	}
	return signed, exp, nil
}

// resolveSubject verifies signature, expiry and realm, returning the sub
// claim. Every failure collapses into UnauthenticatedError.
func (s AuthService) resolveSubject(token, realm string) (string, error) {
	if token == "" {
		return "", domain.UnauthenticatedError{}
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.UnauthenticatedError{Err: err}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.UnauthenticatedError{}
	}
	if r, _ := claims["realm"].(string); r != realm {
		return "", domain.UnauthenticatedError{}
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.UnauthenticatedError{}
	}
	return sub, nil
}

// ResolveAdmin maps a session token back to a live admin account.
func (s AuthService) ResolveAdmin(token string) (models.Admin, error) {
	sub, err := s.resolveSubject(token, RealmAdmin)
	if err != nil {
		return models.Admin{}, err
	}
	a, err := s.Admins.GetByUsername(sub)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, domain.UnauthenticatedError{}
		}
		return models.Admin{}, domain.InternalError{Err: err}
	}
	return a, nil
}

// ResolveDispatcher maps a session token back to a live dispatcher. The
// approval gate is re-checked on every request, so an account demoted or
// still pending never slips through with an old cookie.
func (s AuthService) ResolveDispatcher(token string) (models.Dispatcher, error) {
	sub, err := s.resolveSubject(token, RealmDispatcher)
	if err != nil {
		return models.Dispatcher{}, err
	}
	d, err := s.Dispatchers.GetByUsername(sub)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dispatcher{}, domain.UnauthenticatedError{}
		}
		return models.Dispatcher{}, domain.InternalError{Err: err}
	}
	if !d.CanAccess() {
		return models.Dispatcher{}, domain.PendingApprovalError{Username: d.Username}
	}
	return d, nil
}
