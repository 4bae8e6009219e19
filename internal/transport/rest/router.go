package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/internal/assignment"
	"github.com/rahmadiangg/attendance-management/internal/attendance"
	"github.com/rahmadiangg/attendance-management/internal/auditlog"
	"github.com/rahmadiangg/attendance-management/internal/auth"
	"github.com/rahmadiangg/attendance-management/internal/dashboard"
	"github.com/rahmadiangg/attendance-management/internal/notification"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/transport/middleware"
	"github.com/rahmadiangg/attendance-management/internal/transport/swagger"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Schedule     *schedule.Handler
	Assignment   *assignment.Handler
	Attendance   *attendance.Handler
	Notification *notification.Handler
	AuditLog     *auditlog.Handler
	Dashboard    *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, cfg *internal.Config, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RateLimit(cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindow))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
		})

		// The scan endpoint stays open: RFID readers carry no tokens.
		r.Post("/attendance/scan", h.Attendance.Scan)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.Middleware)

			pr.Route("/attendance", func(ar chi.Router) {
				ar.Get("/by-schedule/{scheduleId}", h.Attendance.GetAttendanceBySchedule)
				ar.Patch("/update/{id}", h.Attendance.UpdateAttendance)
				ar.Delete("/delete/{id}", h.Attendance.DeleteAttendance)
				ar.Post("/manual", h.Attendance.CreateManualAttendance)
				ar.Get("/user/{userId}", h.Attendance.GetAttendanceByUser)
				ar.Get("/summary", h.Attendance.GetAttendanceSummary)
				ar.Get("/users/available", h.Assignment.AvailableUsers)
				ar.Get("/last/schedule/{scheduleId}", h.Attendance.GetLastAttendanceBySchedule)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/", h.User.CreateUser)
				ur.Get("/", h.User.GetUsers)
				ur.Get("/{id}", h.User.GetUser)
				ur.Patch("/{id}", h.User.UpdateUser)
				ur.Delete("/{id}", h.User.DeleteUser)
			})

			pr.Route("/schedules", func(sr chi.Router) {
				sr.Post("/", h.Schedule.CreateSchedule)
				sr.Get("/", h.Schedule.GetSchedules)
				sr.Get("/{id}", h.Schedule.GetSchedule)
				sr.Patch("/{id}", h.Schedule.UpdateSchedule)
				sr.Delete("/{id}", h.Schedule.DeleteSchedule)
			})

			pr.Route("/schedule-users", func(sr chi.Router) {
				sr.Post("/", h.Assignment.AssignUser)
				sr.Get("/schedule/{scheduleId}", h.Assignment.GetUsersBySchedule)
				sr.Get("/user/{userId}", h.Assignment.GetSchedulesByUser)
				sr.Delete("/{id}", h.Assignment.UnassignUser)
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Post("/send", h.Notification.SendToUser)
				nr.Post("/send-role", h.Notification.SendToRole)
				nr.Get("/my", h.Notification.GetMyNotifications)
				nr.Patch("/{id}/read", h.Notification.MarkAsRead)
			})

			pr.Get("/audit-logs", h.AuditLog.GetLogs)

			pr.Group(func(dr chi.Router) {
				dr.Use(h.Auth.RequireAdmin)
				dr.Get("/dashboard/attendance-stats", h.Dashboard.AttendanceStats)
				dr.Get("/dashboard/attendance-chart", h.Dashboard.AttendanceChart)
			})
		})
	})
}
