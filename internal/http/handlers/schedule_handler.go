package handlers

import (
	"net/http"
	"strconv"

	"busdesk/internal/domain/models"
	"busdesk/internal/http/middleware"
	"busdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler serves the public timetable and the admin route and
// schedule management of the publisher deployment.
type ScheduleHandler struct {
	Schedules services.ScheduleService
}

func (h ScheduleHandler) svc(c *gin.Context) services.ScheduleService {
	s := h.Schedules
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// Timetable handles GET /schedule: every route with its active departures.
func (h ScheduleHandler) Timetable(c *gin.Context) {
	out, err := h.svc(c).Timetable()
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

func (h ScheduleHandler) ListRoutes(c *gin.Context) {
	routes, err := h.svc(c).ListRoutes()
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// CreateRoute handles POST /admin/routes (form: route_number, route_name,
// description).
func (h ScheduleHandler) CreateRoute(c *gin.Context) {
	rt := models.Route{
		RouteNumber: c.PostForm("route_number"),
		RouteName:   c.PostForm("route_name"),
		Description: c.PostForm("description"),
	}
	if _, err := h.svc(c).CreateRoute(rt); err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/routes")
}

// DeleteRoute handles POST /admin/routes/:id/delete. Called by the
// console via fetch, so it answers JSON instead of redirecting.
func (h ScheduleHandler) DeleteRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc(c).DeleteRoute(id); err != nil {
		RespondError(c, err)
		return
	}
	respondSuccess(c)
}

func (h ScheduleHandler) ListRouteSchedules(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	rt, schedules, err := h.svc(c).ListRouteSchedules(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": rt, "schedules": schedules})
}

// CreateSchedule handles POST /admin/routes/:id/schedules (form:
// departure_time, arrival_time, departure_stop, arrival_stop, days[]).
func (h ScheduleHandler) CreateSchedule(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	in := services.ScheduleInput{
		DepartureTime: c.PostForm("departure_time"),
		ArrivalTime:   c.PostForm("arrival_time"),
		DepartureStop: c.PostForm("departure_stop"),
		ArrivalStop:   c.PostForm("arrival_stop"),
		DaysOfWeek:    c.PostFormArray("days"),
	}
	if _, err := h.svc(c).CreateSchedule(id, in); err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/routes/"+strconv.FormatInt(id, 10)+"/schedules")
}

// DeleteSchedule handles POST /admin/routes/:id/schedules/:sid/delete.
func (h ScheduleHandler) DeleteSchedule(c *gin.Context) {
	routeID, ok := idParam(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := idParam(c, "sid")
	if !ok {
		return
	}
	if err := h.svc(c).DeleteSchedule(routeID, scheduleID); err != nil {
		RespondError(c, err)
		return
	}
	respondSuccess(c)
}
