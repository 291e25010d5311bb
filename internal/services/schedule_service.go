package services

import (
	"database/sql"
	"errors"
	"strconv"

	"busdesk/internal/domain"
	"busdesk/internal/domain/models"
	"busdesk/internal/repositories"
	"busdesk/internal/utils"
)

// ScheduleService backs the route/schedule publisher deployment.
type ScheduleService struct {
	Routes    repositories.RouteRepository
	Schedules repositories.ScheduleRepository
	RequestID string
}

// RouteTimetable is one route with its active departures, the grouping
// the public timetable page renders.
type RouteTimetable struct {
	Route     models.Route      `json:"route"`
	Schedules []models.Schedule `json:"schedules"`
}

// Timetable groups every active schedule under its route.
func (s ScheduleService) Timetable() ([]RouteTimetable, error) {
	routes, err := s.Routes.List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	active, err := s.Schedules.ListActive()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	byRoute := map[int64][]models.Schedule{}
	for _, sch := range active {
		byRoute[sch.RouteID] = append(byRoute[sch.RouteID], sch)
	}

	out := make([]RouteTimetable, 0, len(routes))
	for _, rt := range routes {
		entry := RouteTimetable{Route: rt, Schedules: byRoute[rt.ID]}
		if entry.Schedules == nil {
			entry.Schedules = []models.Schedule{}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s ScheduleService) ListRoutes() ([]models.Route, error) {
	routes, err := s.Routes.List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return routes, nil
}

func (s ScheduleService) GetRoute(routeID int64) (models.Route, error) {
	rt, err := s.Routes.GetByID(routeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route"}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

func (s ScheduleService) CreateRoute(rt models.Route) (models.Route, error) {
	rt.RouteNumber = utils.TrimOrEmpty(rt.RouteNumber)
	rt.RouteName = utils.NormalizeSpace(rt.RouteName)
	if rt.RouteNumber == "" || rt.RouteName == "" {
		return models.Route{}, domain.ValidationError{Msg: "route number and name are required"}
	}

	taken, err := s.Routes.NumberExists(rt.RouteNumber)
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	if taken {
		return models.Route{}, domain.ConflictError{Resource: "route", Msg: "route number already exists"}
	}

	id, err := s.Routes.Create(rt)
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}
	rt.ID = id

	utils.LogEvent(s.RequestID, "schedule", "create_route", "route_number="+rt.RouteNumber)
	return rt, nil
}

// DeleteRoute removes the route with all its schedules; no orphans.
func (s ScheduleService) DeleteRoute(routeID int64) error {
	if err := s.Routes.DeleteCascade(routeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "route"}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "schedule", "delete_route", "route_id="+strconv.FormatInt(routeID, 10))
	return nil
}

func (s ScheduleService) ListRouteSchedules(routeID int64) (models.Route, []models.Schedule, error) {
	rt, err := s.GetRoute(routeID)
	if err != nil {
		return models.Route{}, nil, err
	}
	schedules, err := s.Schedules.ListByRoute(routeID)
	if err != nil {
		return models.Route{}, nil, domain.InternalError{Err: err}
	}
	return rt, schedules, nil
}

type ScheduleInput struct {
	DepartureTime string
	ArrivalTime   string
	DepartureStop string
	ArrivalStop   string
	DaysOfWeek    []string
}

func (s ScheduleService) CreateSchedule(routeID int64, in ScheduleInput) (models.Schedule, error) {
	if _, err := s.GetRoute(routeID); err != nil {
		return models.Schedule{}, err
	}
	if !utils.ValidClock(in.DepartureTime) || !utils.ValidClock(in.ArrivalTime) {
		return models.Schedule{}, domain.ValidationError{Field: "time", Msg: "expected HH:MM"}
	}

	sch := models.Schedule{
		RouteID:       routeID,
		DepartureTime: utils.TrimOrEmpty(in.DepartureTime),
		ArrivalTime:   utils.TrimOrEmpty(in.ArrivalTime),
		DepartureStop: utils.NormalizeSpace(in.DepartureStop),
		ArrivalStop:   utils.NormalizeSpace(in.ArrivalStop),
		DaysOfWeek:    models.JoinDays(in.DaysOfWeek),
		IsActive:      true,
	}
	id, err := s.Schedules.Create(sch)
	if err != nil {
		return models.Schedule{}, domain.InternalError{Err: err}
	}
	sch.ID = id
	return sch, nil
}

func (s ScheduleService) DeleteSchedule(routeID, scheduleID int64) error {
	if _, err := s.GetRoute(routeID); err != nil {
		return err
	}
	if err := s.Schedules.Delete(scheduleID, routeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "schedule"}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}
