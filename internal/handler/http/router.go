package http

import (
	"log/slog"
	"os"

	"github.com/clockwise-org/planning-service-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	scheduleHandler ScheduleHandler,
	shiftHandler ShiftHandler,
	workSessionHandler WorkSessionHandler,
	availabilityHandler AvailabilityHandler,
	conflictHandler ConflictHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "planning-service"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/current", scheduleHandler.GetCurrent)
				r.Get("/week", scheduleHandler.GetWeek)
				r.Get("/{id}", scheduleHandler.Get)

				// Manager surface
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", scheduleHandler.List)
					r.Post("/", scheduleHandler.Create)
					r.Get("/week/any", scheduleHandler.GetWeekAny)
					r.Put("/{id}", scheduleHandler.Update)
					r.Post("/{id}/publish", scheduleHandler.Publish)
					r.Post("/{id}/revert", scheduleHandler.RevertToDraft)

					r.Post("/{scheduleID}/shifts", shiftHandler.Create)
				})

				r.Get("/{scheduleID}/shifts", shiftHandler.ListBySchedule)

				// Admin surface
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/archive", scheduleHandler.Archive)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.ListByEmployee)
				r.Get("/{id}", shiftHandler.Get)

				r.Post("/{shiftID}/clock-in", workSessionHandler.ClockIn)
				r.Post("/{shiftID}/clock-out", workSessionHandler.ClockOut)
				r.Get("/{shiftID}/work-session", workSessionHandler.GetByShift)

				// Manager surface
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/{id}", shiftHandler.Update)
					r.Delete("/{id}", shiftHandler.Delete)
					r.Post("/{id}/reassign", shiftHandler.Reassign)
					r.Post("/swap", shiftHandler.Swap)
				})
			})

			r.Route("/work-sessions", func(r chi.Router) {
				r.Get("/{id}", workSessionHandler.Get)
				r.Get("/{id}/note", workSessionHandler.GetNote)

				// Manager surface
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/unconfirmed", workSessionHandler.ListUnconfirmed)
					r.Get("/work-hours", workSessionHandler.GetWorkHours)
					r.Put("/{id}", workSessionHandler.Modify)
					r.Post("/{id}/confirm", workSessionHandler.Confirm)
					r.Post("/{id}/modify-and-confirm", workSessionHandler.ModifyAndConfirm)
					r.Put("/{id}/note", workSessionHandler.UpsertNote)
				})

				// Admin surface
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/cancel", workSessionHandler.Cancel)
				})
			})

			r.Route("/availabilities", func(r chi.Router) {
				r.Post("/", availabilityHandler.Create)
				r.Get("/", availabilityHandler.ListByEmployee)
				r.Get("/{id}", availabilityHandler.Get)
				r.Put("/{id}", availabilityHandler.Update)
				r.Delete("/{id}", availabilityHandler.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/by-business-unit", availabilityHandler.ListByBusinessUnit)
				})
			})

			r.Route("/conflicts", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/schedule-check", conflictHandler.CheckSchedule)
				r.Post("/swap-check", conflictHandler.CheckSwap)
			})
		})
	})

	return r
}
