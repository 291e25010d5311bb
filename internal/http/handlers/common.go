package handlers

import (
	"net/http"
	"strconv"
	"time"

	"busdesk/internal/domain"
	"busdesk/internal/http/middleware"
	"busdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, domain.ValidationError{Field: name, Msg: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// setSessionCookie installs the access token. HttpOnly keeps it away
// from scripts; SameSite=Lax still sends it on top-level navigations.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = services.DefaultSessionTTL
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
