package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	lastPunch attendance.PunchRequest
	punchErr  error
}

func (s *stubAttendanceService) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	s.lastPunch = req
	if s.punchErr != nil {
		return attendance.PunchResponse{}, s.punchErr
	}
	return attendance.PunchResponse{GraceMinutes: 15, Attendance: attendance.DailyResponse{Status: attendance.StatusPresent}}, nil
}

func (s *stubAttendanceService) Today(ctx context.Context, actor *user.Actor) (attendance.TodayResponse, error) {
	return attendance.TodayResponse{Date: "2024-03-11", GraceMinutes: 15}, nil
}

func (s *stubAttendanceService) ListOffices(ctx context.Context) ([]office.OfficeResponse, error) {
	return []office.OfficeResponse{{ID: "o-1", Code: "HQ", AllowedRadiusMeters: 100}}, nil
}

func (s *stubAttendanceService) Missing(ctx context.Context, req attendance.MissingRequest) (attendance.MissingResponse, error) {
	return attendance.MissingResponse{Date: req.Date}, nil
}

type stubReportService struct {
	lastReq report.MonthlyReportRequest
}

func (s *stubReportService) MonthlyReport(ctx context.Context, actor *user.Actor, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	s.lastReq = req
	return report.MonthlyReport{EmployeeID: actor.EmployeeID}, nil
}

func (s *stubReportService) PersonalSummary(ctx context.Context, actor *user.Actor) (report.PersonalSummary, error) {
	return report.PersonalSummary{EmployeeID: actor.EmployeeID}, nil
}

func (s *stubReportService) ExportMonthlyAll(ctx context.Context, req report.MonthlyReportRequest) (report.ExportFile, error) {
	return report.ExportFile{
		Filename:    "attendance_2024_03.xlsx",
		ContentType: report.XLSXContentType,
		Content:     []byte("PK"),
	}, nil
}

type routerFixture struct {
	router     *chi.Mux
	jwt        jwt.Service
	attendance *stubAttendanceService
	reports    *stubReportService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		jwt:        jwt.NewJWTService("test-secret-key-for-jwt", "1h"),
		attendance: &stubAttendanceService{},
		reports:    &stubReportService{},
	}
	f.router = NewRouter(
		RouterConfig{AppName: "hris-attendance", Version: "test", Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		f.jwt,
		NewAttendanceHandler(f.attendance),
		NewReportHandler(f.reports),
		NewNotificationHandler(sse.NewHub()),
	)
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, body string, role user.Role) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != "" {
		token, _, err := f.jwt.GenerateAccessToken("emp-1", role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Heartbeat(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Authorization(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		name     string
		method   string
		path     string
		role     user.Role
		wantCode int
	}{
		{"offices without token", http.MethodGet, "/api/v1/attendance/offices", "", http.StatusUnauthorized},
		{"offices as employee", http.MethodGet, "/api/v1/attendance/offices", user.RoleEmployee, http.StatusOK},
		{"today as employee", http.MethodGet, "/api/v1/attendance/today", user.RoleEmployee, http.StatusOK},
		{"personal summary", http.MethodGet, "/api/v1/attendance/summary/personal", user.RoleEmployee, http.StatusOK},
		{"missing as employee", http.MethodGet, "/api/v1/attendance/admin/missing", user.RoleEmployee, http.StatusForbidden},
		{"missing as manager", http.MethodGet, "/api/v1/attendance/admin/missing", user.RoleManager, http.StatusForbidden},
		{"missing as hr admin", http.MethodGet, "/api/v1/attendance/admin/missing?date=2024-03-11", user.RoleHRAdmin, http.StatusOK},
		{"export as employee", http.MethodGet, "/api/v1/attendance/report/monthly/all", user.RoleEmployee, http.StatusForbidden},
		{"export as owner", http.MethodGet, "/api/v1/attendance/report/monthly/all?year=2024&month=3", user.RoleOwner, http.StatusOK},
		{"unknown role cannot punch", http.MethodPost, "/api/v1/attendance/punch", user.Role("intern"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, "", tt.role)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRouter_Punch(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"office_id":"o-1","punch_type":"IN","employee_id":"emp-9","clientTime":1710122400000,"latitude":-6.2,"longitude":106.8}`
	rec := f.do(t, http.MethodPost, "/api/v1/attendance/punch", body, user.RoleEmployee)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Checked in successfully", resp.Message)

	got := f.attendance.lastPunch
	require.NotNil(t, got.Actor)
	assert.Equal(t, "emp-1", got.Actor.EmployeeID)
	assert.Equal(t, user.RoleEmployee, got.Actor.Role)
	require.NotNil(t, got.EmployeeID)
	assert.Equal(t, "emp-9", *got.EmployeeID, "the handler forwards the field; the service decides whether to honor it")
	require.NotNil(t, got.ClientTime)
	assert.Equal(t, int64(1710122400000), got.ClientTime.Time.UnixMilli())
}

func TestRouter_PunchMalformedBody(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/punch", `{"office_id":`, user.RoleEmployee)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_PunchRejection(t *testing.T) {
	f := newRouterFixture(t)
	f.attendance.punchErr = attendance.NewCriticalSecurityError(map[string]any{
		"serverTime":  "2024-03-11T01:00:00Z",
		"networkTime": "2024-03-11T01:12:00Z",
		"drift":       12.0,
	})

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/punch", `{"office_id":"o-1","punch_type":"IN"}`, user.RoleEmployee)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, attendance.CodeCriticalSecurity, resp.Error.Code)
	assert.Equal(t, 12.0, resp.Error.Diagnostics["drift"])
	assert.Equal(t, "2024-03-11T01:12:00Z", resp.Error.Diagnostics["networkTime"])
}

func TestRouter_MonthlyReportQuery(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/report/monthly?employee_id=emp-2&year=2024&month=2", "", user.RoleManager)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.MonthlyReportRequest{EmployeeID: "emp-2", Year: 2024, Month: 2}, f.reports.lastReq)

	rec = f.do(t, http.MethodGet, "/api/v1/attendance/report/monthly", "", user.RoleManager)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.MonthlyReportRequest{}, f.reports.lastReq, "an omitted period is left for the service to resolve")

	for _, query := range []string{"month=feb", "month=0", "year=-1"} {
		rec = f.do(t, http.MethodGet, "/api/v1/attendance/report/monthly?"+query, "", user.RoleManager)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestRouter_ExportHeaders(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/report/monthly/all?year=2024&month=3", "", user.RoleHRAdmin)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance_2024_03.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}
