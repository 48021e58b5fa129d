package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/vams-io/vams-backend-go/internal/handler/http/middleware"
	"github.com/vams-io/vams-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	mismatchHandler MismatchHandler,
	evidenceHandler EvidenceHandler,
	timesheetHandler TimesheetHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "vams"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Post("/employee-code", authHandler.LoginWithEmployeeCode)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {

				// Vendor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireVendor)
					r.Post("/", attendanceHandler.Mark)
					r.Get("/my", attendanceHandler.MyMonth)
					r.Get("/my/summary", attendanceHandler.MySummary)
				})

				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/pending", attendanceHandler.PendingApprovals)
					r.Post("/approve", attendanceHandler.Approve)
					r.Post("/reject", attendanceHandler.Reject)
				})
			})

			r.Route("/mismatches", func(r chi.Router) {

				// Vendor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireVendor)
					r.Get("/my", mismatchHandler.MyMismatches)
					r.Post("/resolve", mismatchHandler.Resolve)
				})

				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/team", mismatchHandler.TeamMismatches)
					r.Post("/action", mismatchHandler.Action)
					r.Get("/stats", mismatchHandler.Stats)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/detect", mismatchHandler.RunDetection)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {

				// Vendor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireVendor)
					r.Get("/my", timesheetHandler.MyTimesheet)
				})

				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/generate", timesheetHandler.Generate)
					r.Get("/", timesheetHandler.ForMonth)
					r.Get("/workday-report", timesheetHandler.WorkdayReport)
				})
			})

			// Admin only
			r.Route("/sites/{siteID}", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/evidence", evidenceHandler.Upload)
				r.Get("/cycles", evidenceHandler.ListCycles)
				r.Get("/cycles/current", evidenceHandler.CycleStatus)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/settings", settingsHandler.View)
			})
		})
	})
	return r
}
