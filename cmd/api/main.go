package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/nettime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/telemetry"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/hris-attendance-go/internal/service/audit"
	notificationService "github.com/cmlabs-hris/hris-attendance-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/hris-attendance-go/internal/service/shift"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	appName    = "hris-attendance"
	appVersion = "v1.0.0"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: appName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	loc := cfg.Location()

	transactor := postgresql.NewTransactor(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	punchEventRepo := postgresql.NewPunchEventRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	violationRepo := postgresql.NewSecurityViolationRepository(db)
	auditLogRepo := postgresql.NewAuditLogRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	ruleRepo := postgresql.NewAttendanceRuleRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	timeClient := nettime.NewClient(cfg.Clock.NetworkTimeURL, cfg.Clock.NetworkTimeTimeout)
	hub := sse.NewHub()

	resolver := shiftService.NewResolver(shiftRepo, ruleRepo)
	recorder := auditService.NewRecorder(auditLogRepo)
	notifier := notificationService.NewLateNotifier(hub, employeeRepo)

	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		punchEventRepo,
		officeRepo,
		employeeRepo,
		leaveRequestRepo,
		violationRepo,
		resolver,
		timeClient,
		recorder,
		notifier,
		attendanceService.Config{
			Location:            loc,
			ServerMaxDrift:      cfg.Clock.ServerMaxDrift,
			ClientMaxDrift:      cfg.Clock.ClientMaxDrift,
			DefaultRadiusMeters: float64(cfg.Geofence.DefaultRadius),
		},
	)
	reportSvc := reportService.NewReportService(
		attendanceRepo,
		employeeRepo,
		leaveRequestRepo,
		reportService.Config{Location: loc},
	)

	scheduler := cron.NewScheduler()
	clockJobs := cron.NewClockJobs(timeClient, cfg.Clock.ServerMaxDrift, time.Now)
	if err := clockJobs.RegisterJobs(scheduler, cfg.Clock.CheckInterval); err != nil {
		slog.Error("Error registering cron jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        appName,
			Version:        appVersion,
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.AllowedOrigins(),
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewNotificationHandler(hub),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           otelhttp.NewHandler(router, appName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
