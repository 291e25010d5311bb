package handlers

import (
	"net/http"
	"strconv"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/http/middleware"
	"busdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// TicketHandler serves the passenger booking flow and the dispatcher
// ticket status actions.
type TicketHandler struct {
	Booking services.BookingService
	Docs    services.DocsService
}

func (h TicketHandler) svc(c *gin.Context) services.BookingService {
	s := h.Booking
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// Book handles POST /trips/:id/book (form: passenger_name,
// passenger_phone, boarding_point, is_open_date). On success the browser
// is sent to the new ticket's page.
func (h TicketHandler) Book(c *gin.Context) {
	tripID, ok := idParam(c, "id")
	if !ok {
		return
	}

	in := services.BookingInput{
		PassengerName:  c.PostForm("passenger_name"),
		PassengerPhone: c.PostForm("passenger_phone"),
		BoardingPoint:  c.PostForm("boarding_point"),
		IsOpenDate:     c.PostForm("is_open_date") == "1",
	}
	t, err := h.svc(c).Book(tripID, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/tickets/"+strconv.FormatInt(t.ID, 10))
}

func (h TicketHandler) GetTicket(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	t, err := h.svc(c).GetTicket(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": t})
}

// Pay handles POST /tickets/:id/pay. Paying twice is a no-op.
func (h TicketHandler) Pay(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	t, err := h.svc(c).Pay(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/tickets/"+strconv.FormatInt(t.ID, 10))
}

// UpdateStatus handles POST /dispatcher/tickets/:id/status (form: status,
// reason). Only transitions the state machine allows go through.
func (h TicketHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	next, valid := models.ParseTicketStatus(c.PostForm("status"))
	if !valid {
		RespondError(c, domain.ValidationError{Field: "status", Msg: "unknown status"})
		return
	}

	t, err := h.svc(c).UpdateStatus(id, next, c.PostForm("reason"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dispatcher/trips/"+strconv.FormatInt(t.TripID, 10)+"/tickets")
}

// ETicket handles GET /tickets/:id/e-ticket, streaming the printable PDF.
func (h TicketHandler) ETicket(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)

	pdf, filename, err := docs.GenerateETicket(id)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
