package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busdesk/internal/config"
	"busdesk/internal/db"
	busdeskhttp "busdesk/internal/http"

	"github.com/gin-gonic/gin"
)

// scheduleapi is the route/schedule publisher deployment: public
// timetable plus the admin console.
func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn, err := config.ConnectDB(env)
	if err != nil {
		log.Fatalf("[scheduleapi] database connect failed: %v", err)
	}
	defer conn.Close()

	if err := db.EnsureSchema(conn); err != nil {
		log.Fatalf("[scheduleapi] schema setup failed: %v", err)
	}

	router := busdeskhttp.NewScheduleRouter(env, conn)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("[scheduleapi] listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[scheduleapi] server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[scheduleapi] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[scheduleapi] forced shutdown: %v", err)
	}
}
