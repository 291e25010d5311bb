package middleware

import (
	"net/http"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "access_token"

const (
	adminKey      = "current_admin"
	dispatcherKey = "current_dispatcher"
)

// RequireAdmin gates the schedule-publisher console. Browser flows get a
// redirect back to the login page instead of a bare 401.
func RequireAdmin(auth services.AuthService, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		admin, err := auth.ResolveAdmin(token)
		if err != nil {
			if domain.IsUnauthenticated(err) {
				c.Redirect(http.StatusFound, loginPath)
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"})
			}
			c.Abort()
			return
		}

		c.Set(adminKey, admin)
		c.Next()
	}
}

// RequireDispatcher gates the booking console. An authenticated but
// unapproved dispatcher gets 403 with a distinct code so the frontend
// can show the "awaiting approval" page instead of the login form.
func RequireDispatcher(auth services.AuthService, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		d, err := auth.ResolveDispatcher(token)
		if err != nil {
			switch {
			case domain.IsPendingApproval(err):
				c.JSON(http.StatusForbidden, gin.H{"error": "account awaiting approval", "code": "pending_approval"})
			case domain.IsUnauthenticated(err):
				c.Redirect(http.StatusFound, loginPath)
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"})
			}
			c.Abort()
			return
		}

		c.Set(dispatcherKey, d)
		c.Next()
	}
}

// CurrentAdmin returns the admin stored by RequireAdmin.
func CurrentAdmin(c *gin.Context) (models.Admin, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return models.Admin{}, false
	}
	a, ok := v.(models.Admin)
	return a, ok
}

// CurrentDispatcher returns the dispatcher stored by RequireDispatcher.
func CurrentDispatcher(c *gin.Context) (models.Dispatcher, bool) {
	v, ok := c.Get(dispatcherKey)
	if !ok {
		return models.Dispatcher{}, false
	}
	d, ok := v.(models.Dispatcher)
	return d, ok
}
