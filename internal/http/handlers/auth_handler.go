package handlers

import (
	"net/http"

	"busdesk/internal/domain"
	"busdesk/internal/http/middleware"
	"busdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the login/register/logout forms of both consoles.
// Successful form posts answer with a 302 like the server-rendered pages
// expect; failures answer JSON so the form can show an inline message.
type AuthHandler struct {
	Auth      services.AuthService
	Approvals services.ApprovalService
}

// AdminLogin handles POST /admin/login (form: username, password).
func (h AuthHandler) AdminLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	a, err := h.Auth.AuthenticateAdmin(username, password)
	if err != nil {
		RespondError(c, err)
		return
	}

	token, _, err := h.Auth.IssueSession(a.Username, services.RealmAdmin)
	if err != nil {
		RespondError(c, err)
		return
	}

	setSessionCookie(c, token, h.Auth.TTL)
	c.Redirect(http.StatusFound, "/admin/routes")
}

// AdminRegister handles POST /admin/register.
func (h AuthHandler) AdminRegister(c *gin.Context) {
	_, err := h.Auth.RegisterAdmin(
		c.PostForm("username"),
		c.PostForm("email"),
		c.PostForm("password"),
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// AdminLogout clears the cookie. Tokens are stateless, so there is
// nothing server-side to revoke.
func (h AuthHandler) AdminLogout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/admin/login")
}

// DispatcherLogin handles POST /dispatcher/login. Valid credentials on an
// unapproved account answer 403 pending_approval, never a session.
func (h AuthHandler) DispatcherLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	d, err := h.Auth.LoginDispatcher(username, password)
	if err != nil {
		RespondError(c, err)
		return
	}

	token, _, err := h.Auth.IssueSession(d.Username, services.RealmDispatcher)
	if err != nil {
		RespondError(c, err)
		return
	}

	setSessionCookie(c, token, h.Auth.TTL)
	c.Redirect(http.StatusFound, "/dispatcher/trips")
}

// DispatcherRegister handles POST /dispatcher/register. The account lands
// in the unapproved state and waits for a super dispatcher.
func (h AuthHandler) DispatcherRegister(c *gin.Context) {
	svc := h.Approvals
	svc.RequestID = middleware.GetRequestID(c)

	_, err := svc.Register(services.DispatcherRegistration{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dispatcher/login")
}

func (h AuthHandler) DispatcherLogout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/dispatcher/login")
}

// Me returns the account behind the current session, for the console
// header. Mounted inside the auth middleware of each deployment.
func (h AuthHandler) AdminMe(c *gin.Context) {
	a, ok := middleware.CurrentAdmin(c)
	if !ok {
		RespondError(c, domain.UnauthenticatedError{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": a.Username, "email": a.Email})
}

func (h AuthHandler) DispatcherMe(c *gin.Context) {
	d, ok := middleware.CurrentDispatcher(c)
	if !ok {
		RespondError(c, domain.UnauthenticatedError{})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username": d.Username,
		"email":    d.Email,
		"role":     d.Role().String(),
	})
}
