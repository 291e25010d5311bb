package handlers

import (
	"net/http"

	"busdesk/internal/domain"
	"busdesk/internal/http/middleware"
	"busdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// ApprovalHandler serves the super-dispatcher approval queue.
type ApprovalHandler struct {
	Approvals services.ApprovalService
}

func (h ApprovalHandler) svc(c *gin.Context) services.ApprovalService {
	s := h.Approvals
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// ListPending handles GET /dispatcher/pending.
func (h ApprovalHandler) ListPending(c *gin.Context) {
	actor, ok := middleware.CurrentDispatcher(c)
	if !ok {
		RespondError(c, domain.UnauthenticatedError{})
		return
	}
	pending, err := h.svc(c).ListPending(actor)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// Approve handles POST /dispatcher/pending/:id/approve.
func (h ApprovalHandler) Approve(c *gin.Context) {
	actor, ok := middleware.CurrentDispatcher(c)
	if !ok {
		RespondError(c, domain.UnauthenticatedError{})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc(c).Approve(actor, id); err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dispatcher/pending")
}

// Reject handles POST /dispatcher/pending/:id/reject. The account is
// deleted, so the queue fetch after this call no longer shows it.
func (h ApprovalHandler) Reject(c *gin.Context) {
	actor, ok := middleware.CurrentDispatcher(c)
	if !ok {
		RespondError(c, domain.UnauthenticatedError{})
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc(c).Reject(actor, id); err != nil {
		RespondError(c, err)
		return
	}
	respondSuccess(c)
}
