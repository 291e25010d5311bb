package handlers

import (
	"net/http"

	"busdesk/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondError maps a domain error onto a JSON body with a stable code.
// Frontends branch on code, humans read error.
func RespondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation"})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "conflict"})
	case domain.IsSoldOut(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "sold_out"})
	case domain.IsPendingApproval(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "pending_approval"})
	case domain.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "forbidden"})
	case domain.IsUnauthenticated(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials", "code": "unauthenticated"})
	case domain.IsNoTicketNumbers(err):
		// capacity ceiling, not a client mistake
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": "no_ticket_numbers"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"})
	}
}
