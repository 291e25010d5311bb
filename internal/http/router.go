package http

import (
	"database/sql"

	"busdesk/internal/config"
	"busdesk/internal/http/handlers"
	"busdesk/internal/http/middleware"
	"busdesk/internal/repositories"
	"busdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func baseEngine() *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "not found", "code": "not_found"})
	})
	return r
}

func authService(env config.Env, conn *sql.DB) services.AuthService {
	return services.AuthService{
		Admins:      repositories.AdminRepository{DB: conn},
		Dispatchers: repositories.DispatcherRepository{DB: conn},
		Secret:      env.JWTSecret,
		TTL:         env.SessionTTL,
	}
}

// NewScheduleRouter wires the route/schedule publisher deployment: the
// public timetable plus the admin console behind the admin session.
func NewScheduleRouter(env config.Env, conn *sql.DB) *gin.Engine {
	r := baseEngine()

	auth := authService(env, conn)
	scheduleSvc := services.ScheduleService{
		Routes:    repositories.RouteRepository{DB: conn},
		Schedules: repositories.ScheduleRepository{DB: conn},
	}

	authH := handlers.AuthHandler{Auth: auth}
	schedH := handlers.ScheduleHandler{Schedules: scheduleSvc}
	sysH := handlers.SystemHandler{DB: conn, Service: "scheduleapi"}

	api := r.Group("/api")

	api.GET("/health", sysH.Health)
	api.GET("/db-check", sysH.DBCheck)

	api.GET("/schedule", schedH.Timetable)

	api.POST("/admin/login", authH.AdminLogin)
	api.POST("/admin/register", authH.AdminRegister)
	api.POST("/admin/logout", authH.AdminLogout)

	admin := api.Group("/admin", middleware.RequireAdmin(auth, "/admin/login"))
	{
		admin.GET("/me", authH.AdminMe)
		admin.GET("/routes", schedH.ListRoutes)
		admin.POST("/routes", schedH.CreateRoute)
		admin.POST("/routes/:id/delete", schedH.DeleteRoute)
		admin.GET("/routes/:id/schedules", schedH.ListRouteSchedules)
		admin.POST("/routes/:id/schedules", schedH.CreateSchedule)
		admin.POST("/routes/:id/schedules/:sid/delete", schedH.DeleteSchedule)
	}

	return r
}

// NewBookingRouter wires the booking deployment: passenger self-service
// (trips, booking, payment, e-ticket) plus the dispatcher console behind
// the dispatcher session.
func NewBookingRouter(env config.Env, conn *sql.DB) *gin.Engine {
	r := baseEngine()

	auth := authService(env, conn)
	tripRepo := repositories.TripRepository{DB: conn}
	ticketRepo := repositories.TicketRepository{DB: conn}

	bookingSvc := services.BookingService{Trips: tripRepo, Tickets: ticketRepo, DB: conn}
	approvalSvc := services.ApprovalService{Dispatchers: repositories.DispatcherRepository{DB: conn}}
	docsSvc := services.DocsService{Tickets: ticketRepo, Trips: tripRepo}

	authH := handlers.AuthHandler{Auth: auth, Approvals: approvalSvc}
	tripH := handlers.TripHandler{Booking: bookingSvc}
	ticketH := handlers.TicketHandler{Booking: bookingSvc, Docs: docsSvc}
	approvalH := handlers.ApprovalHandler{Approvals: approvalSvc}
	sysH := handlers.SystemHandler{DB: conn, Service: "bookingapi"}

	api := r.Group("/api")

	api.GET("/health", sysH.Health)
	api.GET("/db-check", sysH.DBCheck)

	// passenger self-service, no session required
	api.GET("/trips", tripH.ListTrips)
	api.GET("/trips/:id", tripH.GetTrip)
	api.POST("/trips/:id/book", ticketH.Book)
	api.GET("/tickets/:id", ticketH.GetTicket)
	api.POST("/tickets/:id/pay", ticketH.Pay)
	api.GET("/tickets/:id/e-ticket", ticketH.ETicket)

	api.POST("/dispatcher/login", authH.DispatcherLogin)
	api.POST("/dispatcher/register", authH.DispatcherRegister)
	api.POST("/dispatcher/logout", authH.DispatcherLogout)

	dispatcher := api.Group("/dispatcher", middleware.RequireDispatcher(auth, "/dispatcher/login"))
	{
		dispatcher.GET("/me", authH.DispatcherMe)
		dispatcher.POST("/trips", tripH.CreateTrip)
		dispatcher.POST("/trips/:id/edit", tripH.EditTrip)
		dispatcher.POST("/trips/:id/delete", tripH.DeleteTrip)
		dispatcher.GET("/trips/:id/tickets", tripH.ListTripTickets)
		dispatcher.POST("/tickets/:id/status", ticketH.UpdateStatus)
		dispatcher.GET("/pending", approvalH.ListPending)
		dispatcher.POST("/pending/:id/approve", approvalH.Approve)
		dispatcher.POST("/pending/:id/reject", approvalH.Reject)
	}

	return r
}
