package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	ja := JWTService.JWTAuth()

	r.Route("/api/v1/attendance", func(r chi.Router) {
		// Header or cookie tokens
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired)

			r.Get("/offices", attendanceHandler.ListOffices)
			r.Get("/today", attendanceHandler.Today)
			r.With(middleware.RequirePermission(user.PermissionAttendancePunch)).
				Post("/punch", attendanceHandler.Punch)

			r.Get("/summary/personal", reportHandler.PersonalSummary)
			r.Get("/report/monthly", reportHandler.MonthlyReport)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
				r.Get("/admin/missing", attendanceHandler.Missing)
			})
			r.With(middleware.RequirePermission(user.PermissionReportsExport)).
				Get("/report/monthly/all", reportHandler.ExportMonthlyAll)
		})

		// EventSource clients pass the token as ?jwt=
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(ja, jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired)
			r.Get("/events", notificationHandler.Stream)
		})
	})
	return r
}
