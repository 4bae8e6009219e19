package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/internal/assignment"
	assignmentpg "github.com/rahmadiangg/attendance-management/internal/assignment/postgres"
	"github.com/rahmadiangg/attendance-management/internal/attendance"
	attendancepg "github.com/rahmadiangg/attendance-management/internal/attendance/postgres"
	"github.com/rahmadiangg/attendance-management/internal/auditlog"
	auditlogpg "github.com/rahmadiangg/attendance-management/internal/auditlog/postgres"
	"github.com/rahmadiangg/attendance-management/internal/auth"
	"github.com/rahmadiangg/attendance-management/internal/core/events"
	"github.com/rahmadiangg/attendance-management/internal/dashboard"
	dashboardpg "github.com/rahmadiangg/attendance-management/internal/dashboard/postgres"
	"github.com/rahmadiangg/attendance-management/internal/notification"
	notificationpg "github.com/rahmadiangg/attendance-management/internal/notification/postgres"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	schedulepg "github.com/rahmadiangg/attendance-management/internal/schedule/postgres"
	"github.com/rahmadiangg/attendance-management/internal/transport/rest"
	"github.com/rahmadiangg/attendance-management/internal/user"
	userpg "github.com/rahmadiangg/attendance-management/internal/user/postgres"
	"github.com/rahmadiangg/attendance-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	bus := events.NewEventBus(lg)

	userRepo := userpg.NewUserRepository(gormDB)
	scheduleRepo := schedulepg.NewScheduleRepository(gormDB)
	assignmentRepo := assignmentpg.NewAssignmentRepository(gormDB)
	attendanceRepo := attendancepg.NewAttendanceRepository(gormDB)
	notificationRepo := notificationpg.NewNotificationRepository(gormDB)
	auditLogRepo := auditlogpg.NewAuditLogRepository(gormDB)
	dashboardRepo := dashboardpg.NewDashboardRepository(gormDB)

	userService := user.NewService(userRepo, lg, config.Security.BCryptCost)
	scheduleService := schedule.NewService(scheduleRepo, lg)
	assignmentService := assignment.NewService(assignmentRepo, userRepo, scheduleRepo, lg)
	attendanceService := attendance.NewService(attendanceRepo, userRepo, scheduleRepo, assignmentRepo, bus, lg)
	notificationService := notification.NewService(notificationRepo, userRepo, lg)
	auditLogService := auditlog.NewService(auditLogRepo, lg)
	dashboardService := dashboard.NewService(dashboardRepo, lg)

	tokens := auth.NewTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(userRepo, userService, tokens, auth.NewDenylist(), bus, lg)

	// Side effects of a scan ride the event bus so the attendance write
	// never waits on them.
	bus.Subscribe(events.EventTypeAttendanceRecorded, notificationService.HandleAttendanceRecorded)
	bus.Subscribe(events.EventTypeAttendanceRecorded, auditLogService.HandleAttendanceRecorded)
	bus.Subscribe(events.EventTypeUserLoggedIn, auditLogService.HandleUserLoggedIn)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Schedule:     schedule.NewHandler(scheduleService),
		Assignment:   assignment.NewHandler(assignmentService),
		Attendance:   attendance.NewHandler(attendanceService),
		Notification: notification.NewHandler(notificationService),
		AuditLog:     auditlog.NewHandler(auditLogService),
		Dashboard:    dashboard.NewHandler(dashboardService),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, handlers, config, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
