package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, checkClockHandler CheckClockHandler, allowedOrigins []string, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "checkclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", checkClockHandler.ClockIn)
				r.Post("/clock-out", checkClockHandler.ClockOut)
				r.Post("/break-start", checkClockHandler.BreakStart)
				r.Post("/break-end", checkClockHandler.BreakEnd)

				r.Get("/", checkClockHandler.List)
				r.Get("/today-status", checkClockHandler.TodayStatus)
				r.Get("/zones", checkClockHandler.Zones)

				// Admin only
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).
					Get("/summary", checkClockHandler.Summary)
				r.With(middleware.RequirePermission(user.PermissionAttendanceManual)).
					Post("/manual", checkClockHandler.ManualEntry)
				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).
					Post("/{id}/approve", checkClockHandler.Approve)
				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).
					Post("/{id}/decline", checkClockHandler.Decline)
			})
		})
	})

	return r
}
