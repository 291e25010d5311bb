package handlers

import (
	"net/http"
	"strconv"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/http/middleware"
	"busdesk/internal/services"
	"busdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// TripHandler serves trip listing for passengers and trip management for
// dispatchers.
type TripHandler struct {
	Booking services.BookingService
}

func (h TripHandler) svc(c *gin.Context) services.BookingService {
	s := h.Booking
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.svc(c).ListTrips()
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func (h TripHandler) GetTrip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	t, err := h.svc(c).GetTrip(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": t})
}

// tripFromForm reads the shared trip form fields. Validation beyond basic
// parsing lives in the service.
func tripFromForm(c *gin.Context) (models.Trip, error) {
	seats, err := strconv.Atoi(c.PostForm("total_seats"))
	if err != nil {
		return models.Trip{}, domain.ValidationError{Field: "total_seats", Msg: "must be an integer"}
	}
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil || price < 0 {
		return models.Trip{}, domain.ValidationError{Field: "price", Msg: "must be a non-negative integer"}
	}

	date := utils.TrimOrEmpty(c.PostForm("departure_date"))
	if _, err := utils.ParseDate(date); err != nil {
		return models.Trip{}, domain.ValidationError{Field: "departure_date", Msg: "expected YYYY-MM-DD"}
	}
	dep := utils.TrimOrEmpty(c.PostForm("departure_time"))
	arr := utils.TrimOrEmpty(c.PostForm("arrival_time"))
	if !utils.ValidClock(dep) || !utils.ValidClock(arr) {
		return models.Trip{}, domain.ValidationError{Field: "time", Msg: "expected HH:MM"}
	}

	return models.Trip{
		DepartureCity: utils.NormalizeSpace(c.PostForm("departure_city")),
		ArrivalCity:   utils.NormalizeSpace(c.PostForm("arrival_city")),
		DepartureDate: date,
		DepartureTime: dep,
		ArrivalTime:   arr,
		BusNumber:     utils.TrimOrEmpty(c.PostForm("bus_number")),
		BusName:       utils.NormalizeSpace(c.PostForm("bus_name")),
		BusColor:      utils.TrimOrEmpty(c.PostForm("bus_color")),
		TotalSeats:    seats,
		Price:         price,
		IsActive:      c.PostForm("is_active") != "0",
	}, nil
}

// CreateTrip handles POST /dispatcher/trips.
func (h TripHandler) CreateTrip(c *gin.Context) {
	t, err := tripFromForm(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if _, err := h.svc(c).CreateTrip(t); err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dispatcher/trips")
}

// EditTrip handles POST /dispatcher/trips/:id/edit. The available counter
// is recomputed server-side from the sold count.
func (h TripHandler) EditTrip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	t, err := tripFromForm(c)
	if err != nil {
		RespondError(c, err)
		return
	}
	if _, err := h.svc(c).EditTrip(id, t); err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dispatcher/trips")
}

// DeleteTrip handles POST /dispatcher/trips/:id/delete; tickets go with
// the trip.
func (h TripHandler) DeleteTrip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc(c).DeleteTrip(id); err != nil {
		RespondError(c, err)
		return
	}
	respondSuccess(c)
}

// ListTripTickets handles GET /dispatcher/trips/:id/tickets, the manifest
// a dispatcher works from.
func (h TripHandler) ListTripTickets(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	svc := h.svc(c)
	t, err := svc.GetTrip(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	tickets, err := svc.ListTickets(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": t, "tickets": tickets})
}
