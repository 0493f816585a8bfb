package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/heakbomb/resto-backend-go/internal/config"
	"github.com/heakbomb/resto-backend-go/internal/handler/http/middleware"
	"github.com/heakbomb/resto-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	shiftHandler ShiftHandler,
	wageHandler WageHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "resto-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequireEmployee)
				r.Post("/punch", attendanceHandler.Punch)
				r.Get("/recent", attendanceHandler.ListRecent)
			})

			r.Route("/stores/{storeID}", func(r chi.Router) {
				r.Use(middleware.RequireStoreAccess)

				// QR polling is open to store staff; the phone UI refreshes
				// the code it displays from here.
				r.Get("/qr", attendanceHandler.GetQRToken)

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)

					r.Get("/attendance", attendanceHandler.ListStoreMonth)

					r.Route("/shifts", func(r chi.Router) {
						r.Post("/", shiftHandler.Create)
						r.Post("/bulk", shiftHandler.CreateBulk)
						r.Get("/", shiftHandler.List)
						r.Delete("/", shiftHandler.DeleteRange)
						r.Put("/{shiftID}", shiftHandler.Update)
						r.Delete("/{shiftID}", shiftHandler.Delete)
					})

					r.Route("/employees/{employeeID}/wage-profile", func(r chi.Router) {
						r.Get("/", wageHandler.Get)
						r.Put("/", wageHandler.Upsert)
					})

					r.Route("/payroll", func(r chi.Router) {
						r.Post("/compute", payrollHandler.Compute)
						r.Get("/records", payrollHandler.ListRecords)
						r.Get("/summary", payrollHandler.Summary)
						r.Patch("/records/{payrollID}/status", payrollHandler.SetStatus)
						r.Get("/run", payrollHandler.GetRun)
						r.Post("/run/finalize", payrollHandler.Finalize)
					})
				})
			})
		})
	})
	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
