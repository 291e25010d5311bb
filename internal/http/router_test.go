package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"busdesk/internal/config"
	"busdesk/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testEnv = config.Env{
	JWTSecret:  "test-secret",
	SessionTTL: 30 * time.Minute,
}

var dispatcherCols = []string{"id", "username", "email", "password_hash", "phone", "is_super", "is_approved", "created_at"}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDispatcherLoginSetsSessionCookie(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	hash, _ := services.HashPassword("hunter2")
	mock.ExpectQuery(`FROM dispatchers WHERE username = \?`).WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(2, "bob", "bob@example.com", hash, "", false, true, time.Now()))

	r := NewBookingRouter(testEnv, db)
	w := postForm(r, "/api/dispatcher/login", url.Values{"username": {"bob"}, "password": {"hunter2"}})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/dispatcher/trips" {
		t.Errorf("Location = %q", loc)
	}

	cookies := w.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "access_token" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no access_token cookie set")
	}
	if session.Value == "" {
		t.Error("empty session token")
	}
	if !session.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if session.Path != "/" {
		t.Errorf("cookie path = %q, want /", session.Path)
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", session.SameSite)
	}
	if session.MaxAge != 1800 {
		t.Errorf("Max-Age = %d, want 1800", session.MaxAge)
	}
}

func TestDispatcherLoginPendingAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	hash, _ := services.HashPassword("hunter2")
	mock.ExpectQuery(`FROM dispatchers WHERE username = \?`).WithArgs("carol").
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", hash, "", false, false, time.Now()))

	r := NewBookingRouter(testEnv, db)
	w := postForm(r, "/api/dispatcher/login", url.Values{"username": {"carol"}, "password": {"hunter2"}})

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "pending_approval") {
		t.Errorf("body should carry the pending_approval code: %s", w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" && c.Value != "" {
			t.Error("pending account must not receive a session cookie")
		}
	}
}

func TestDispatcherLoginBadPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	hash, _ := services.HashPassword("hunter2")
	mock.ExpectQuery(`FROM dispatchers WHERE username = \?`).WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(2, "bob", "bob@example.com", hash, "", false, true, time.Now()))

	r := NewBookingRouter(testEnv, db)
	w := postForm(r, "/api/dispatcher/login", url.Values{"username": {"bob"}, "password": {"wrong"}})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestProtectedPageRedirectsWithoutCookie(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	r := NewBookingRouter(testEnv, db)

	req := httptest.NewRequest(http.MethodGet, "/api/dispatcher/pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dispatcher/login" {
		t.Errorf("Location = %q, want /dispatcher/login", loc)
	}
}

func TestProtectedPageWithValidCookie(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	auth := services.AuthService{Secret: testEnv.JWTSecret, TTL: testEnv.SessionTTL}
	token, _, err := auth.IssueSession("root", services.RealmDispatcher)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// middleware re-reads the account, then the handler lists the queue
	mock.ExpectQuery(`FROM dispatchers WHERE username = \?`).WithArgs("root").
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(1, "root", "root@example.com", "x", "", true, true, time.Now()))
	mock.ExpectQuery(`WHERE is_super = 0 AND is_approved = 0`).
		WillReturnRows(sqlmock.NewRows(dispatcherCols).
			AddRow(3, "carol", "carol@example.com", "x", "", false, false, time.Now()))

	r := NewBookingRouter(testEnv, db)

	req := httptest.NewRequest(http.MethodGet, "/api/dispatcher/pending", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "carol") {
		t.Errorf("body should list the pending account: %s", w.Body.String())
	}
}

func TestExpiredCookieRedirects(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// token signed with a different secret never resolves
	foreign := services.AuthService{Secret: "other-secret"}
	token, _, _ := foreign.IssueSession("root", services.RealmDispatcher)

	r := NewBookingRouter(testEnv, db)

	req := httptest.NewRequest(http.MethodGet, "/api/dispatcher/pending", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	r := NewBookingRouter(testEnv, db)
	w := postForm(r, "/api/dispatcher/logout", url.Values{})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" && c.Value == "" && c.MaxAge < 1 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout should clear the access_token cookie")
	}
}

func TestDeleteRouteAnswersSuccessJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	auth := services.AuthService{Secret: testEnv.JWTSecret, TTL: testEnv.SessionTTL}
	token, _, err := auth.IssueSession("alice", services.RealmAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	mock.ExpectQuery(`FROM admins WHERE username = \?`).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(1, "alice", "alice@example.com", "x", time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM schedules WHERE route_id = \?`).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM routes WHERE id = \?`).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := NewScheduleRouter(testEnv, db)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/routes/5/delete", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("body = %s, want success flag", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestHealth(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	r := NewBookingRouter(testEnv, db)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "bookingapi") {
		t.Errorf("body = %s", w.Body.String())
	}
}
