package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/timereg/sendtime/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the timesheet API.
//
// Routes:
//
//	GET  /check          → liveness probe, no auth
//	POST /api/timesheet  → timesheetHandler.Submit
//
// Every request is logged; the submission route additionally requires
// Content-Type: application/json.
func NewRouter(timesheetHandler *TimesheetHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/check", Check)

	r.Route("/api", func(r chi.Router) {
		r.With(chiMiddleware.AllowContentType("application/json")).
			Post("/timesheet", timesheetHandler.Submit)
	})

	return r
}
