package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/security"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// TimeOracle returns nil when the network time cannot be verified.
type TimeOracle interface {
	NetworkTime(ctx context.Context) *time.Time
}

// Transactor runs fn in one database transaction, rolling back on error.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Config struct {
	Location       *time.Location
	ServerMaxDrift time.Duration
	ClientMaxDrift time.Duration

	// DefaultRadiusMeters applies to offices without their own radius.
	DefaultRadiusMeters float64
	Now                 func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.ServerMaxDrift <= 0 {
		c.ServerMaxDrift = 10 * time.Minute
	}
	if c.ClientMaxDrift <= 0 {
		c.ClientMaxDrift = 5 * time.Minute
	}
	if c.DefaultRadiusMeters <= 0 {
		c.DefaultRadiusMeters = office.DefaultRadiusMeters
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type AttendanceServiceImpl struct {
	tx             Transactor
	attendanceRepo attendance.AttendanceRepository
	punchRepo      attendance.PunchEventRepository
	officeRepo     office.OfficeRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	violationRepo  security.ViolationRepository
	resolver       shift.Resolver
	oracle         TimeOracle
	recorder       audit.Recorder
	notifier       attendance.Notifier
	cfg            Config
}

func NewAttendanceService(
	tx Transactor,
	attendanceRepo attendance.AttendanceRepository,
	punchRepo attendance.PunchEventRepository,
	officeRepo office.OfficeRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	violationRepo security.ViolationRepository,
	resolver shift.Resolver,
	oracle TimeOracle,
	recorder audit.Recorder,
	notifier attendance.Notifier,
	cfg Config,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		punchRepo:      punchRepo,
		officeRepo:     officeRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		violationRepo:  violationRepo,
		resolver:       resolver,
		oracle:         oracle,
		recorder:       recorder,
		notifier:       notifier,
		cfg:            cfg.withDefaults(),
	}
}

// Punch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if req.Actor == nil || validator.IsEmpty(req.Actor.EmployeeID) {
		return attendance.PunchResponse{}, auth.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}
	punchType, _ := attendance.ParsePunchType(req.PunchType)

	actor := *req.Actor
	adminLike := actor.IsAdminLike()
	targetID := actor.EmployeeID
	if adminLike && req.EmployeeID != nil && !validator.IsEmpty(*req.EmployeeID) {
		targetID = strings.TrimSpace(*req.EmployeeID)
	}
	if targetID != actor.EmployeeID {
		if err := a.checkTarget(ctx, targetID); err != nil {
			return attendance.PunchResponse{}, err
		}
	}

	serverNow := a.cfg.Now()

	if err := a.checkServerClock(ctx, targetID, serverNow); err != nil {
		return attendance.PunchResponse{}, err
	}
	if err := a.checkClientClock(ctx, actor, targetID, serverNow, req.ClientTime); err != nil {
		return attendance.PunchResponse{}, err
	}

	officeID := strings.TrimSpace(req.OfficeID)
	if !validator.IsValidUUID(officeID) {
		return attendance.PunchResponse{}, office.ErrOfficeNotFound
	}
	of, err := a.officeRepo.GetActiveByID(ctx, officeID)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return attendance.PunchResponse{}, err
		}
		return attendance.PunchResponse{}, fmt.Errorf("failed to get office: %w", err)
	}

	lat, lon := deviceCoordinates(req.Latitude, req.Longitude)
	inside, distance := geo.Inside(lat, lon, of, a.cfg.DefaultRadiusMeters)
	if !adminLike && !inside {
		return attendance.PunchResponse{}, a.rejectGeofence(ctx, actor, targetID, serverNow, of, lat, lon, distance)
	}

	today := a.dayOf(serverNow)
	sh, err := a.resolver.ResolveForDate(ctx, today)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to resolve shift: %w", err)
	}
	if sh == nil {
		return attendance.PunchResponse{}, attendance.ErrNoActiveShift
	}
	rule := a.resolver.ActiveRule(ctx)

	event := attendance.PunchEvent{
		ID:                 uuid.NewString(),
		EmployeeID:         targetID,
		OfficeID:           of.ID,
		PunchType:          punchType,
		PunchedAt:          serverNow,
		Source:             attendance.SourceWeb,
		Note:               req.Note,
		Latitude:           lat,
		Longitude:          lon,
		DistanceFromOffice: distance,
	}
	if inside {
		event.MatchedOfficeID = &of.ID
	}
	if adminLike && targetID != actor.EmployeeID {
		event.Source = attendance.SourceAdmin
		markedBy := actor.EmployeeID
		event.MarkedByEmployeeID = &markedBy
	}

	var daily attendance.Daily
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := a.punchRepo.Create(ctx, event); err != nil {
			return err
		}

		d, err := a.attendanceRepo.LockOrCreate(ctx, targetID, today, &sh.ID)
		if err != nil {
			return err
		}

		switch punchType {
		case attendance.PunchIn:
			start, err := sh.StartOn(today, a.cfg.Location)
			if err != nil {
				return err
			}
			if err := d.CheckIn(serverNow, start, rule.GraceMinutes, of.ID); err != nil {
				return err
			}
			d.ShiftID = &sh.ID
		case attendance.PunchOut:
			if err := d.CheckOut(serverNow, of.ID); err != nil {
				return err
			}
		}

		daily, err = a.attendanceRepo.Update(ctx, d)
		return err
	})
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to record %s punch: %w", punchType, err)
	}

	a.recorder.Record(ctx, audit.Entry{
		ActorID:  &actor.EmployeeID,
		Action:   audit.ActionAttendancePunch,
		Category: audit.CategoryAttendance,
		Status:   audit.StatusSuccess,
		Details: map[string]any{
			"employee_id":          targetID,
			"office_id":            of.ID,
			"punch_type":           string(punchType),
			"source":               string(event.Source),
			"status":               string(daily.Status),
			"late_minutes":         daily.LateMinutes,
			"latitude":             floatOrNil(lat),
			"longitude":            floatOrNil(lon),
			"distance_from_office": roundedOrNil(distance),
			"matched_office_id":    stringOrNil(event.MatchedOfficeID),
		},
	})

	if punchType == attendance.PunchIn && daily.Status == attendance.StatusLate && daily.FirstIn != nil {
		a.notifier.NotifyLate(ctx, attendance.LateNotification{
			EmployeeID:     targetID,
			AttendanceDate: today.Format("2006-01-02"),
			FirstIn:        *daily.FirstIn,
			LateMinutes:    daily.LateMinutes,
			ShiftName:      sh.Name,
			NotifyEmployee: rule.NotifyEmployee,
			NotifyHRAdmin:  rule.NotifyHRAdmin,
		})
	}

	return attendance.PunchResponse{
		Shift:        shift.ToResponse(*sh),
		GraceMinutes: rule.GraceMinutes,
		Attendance:   attendance.ToDailyResponse(daily),
	}, nil
}

// checkTarget requires a delegated punch to name an existing, active employee.
func (a *AttendanceServiceImpl) checkTarget(ctx context.Context, targetID string) error {
	if !validator.IsValidUUID(targetID) {
		return employee.ErrEmployeeNotFound
	}
	emp, err := a.employeeRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// checkServerClock rejects every punch while the server clock disagrees with
// network time. An unavailable oracle skips the check.
func (a *AttendanceServiceImpl) checkServerClock(ctx context.Context, targetID string, serverNow time.Time) error {
	network := a.oracle.NetworkTime(ctx)
	if network == nil {
		return nil
	}

	drift := absDuration(serverNow.Sub(*network))
	if drift <= a.cfg.ServerMaxDrift {
		return nil
	}

	driftMinutes := round2(drift.Minutes())
	a.logViolation(ctx, security.Violation{
		EmployeeID:   &targetID,
		Type:         security.ViolationServerClockDrift,
		ServerTime:   serverNow,
		ReportedTime: network,
		DriftMinutes: &driftMinutes,
		Details:      "server clock differs from network time",
	})

	return attendance.NewCriticalSecurityError(map[string]any{
		"serverTime":  serverNow.UTC().Format(time.RFC3339),
		"networkTime": network.UTC().Format(time.RFC3339),
		"drift":       driftMinutes,
	})
}

func (a *AttendanceServiceImpl) checkClientClock(ctx context.Context, actor user.Actor, targetID string, serverNow time.Time, clientTime *attendance.FlexibleTime) error {
	if clientTime == nil {
		return nil
	}
	if clientTime.Invalid {
		return attendance.ErrInvalidClientTime
	}

	client := clientTime.Time
	drift := absDuration(serverNow.Sub(client))
	if drift <= a.cfg.ClientMaxDrift {
		return nil
	}

	driftMinutes := round2(drift.Minutes())
	a.logViolation(ctx, security.Violation{
		EmployeeID:   &targetID,
		Type:         security.ViolationClientClockDrift,
		ServerTime:   serverNow,
		ReportedTime: &client,
		DriftMinutes: &driftMinutes,
		Details:      "device clock differs from server time",
	})

	diagnostics := map[string]any{
		"serverTime": serverNow.UTC().Format(time.RFC3339),
		"clientTime": client.UTC().Format(time.RFC3339),
		"drift":      driftMinutes,
	}
	a.recorder.Record(ctx, audit.Entry{
		ActorID:  &actor.EmployeeID,
		Action:   audit.ActionClockTamperBlocked,
		Category: audit.CategorySecurity,
		Status:   audit.StatusBlocked,
		Details:  withEmployee(diagnostics, targetID),
	})

	return attendance.NewSecurityViolation(diagnostics)
}

func (a *AttendanceServiceImpl) rejectGeofence(
	ctx context.Context,
	actor user.Actor,
	targetID string,
	serverNow time.Time,
	of office.Office,
	lat, lon *float64,
	distance *float64,
) error {
	details := "location permission missing"
	if lat != nil && lon != nil {
		details = "outside office radius"
	}
	a.logViolation(ctx, security.Violation{
		EmployeeID: &targetID,
		Type:       security.ViolationGPSRejected,
		ServerTime: serverNow,
		Latitude:   lat,
		Longitude:  lon,
		Distance:   distance,
		OfficeID:   &of.ID,
		Details:    details,
	})

	diagnostics := map[string]any{
		"allowedRadius": of.Radius(a.cfg.DefaultRadiusMeters),
	}
	if distance != nil {
		diagnostics["distance"] = round2(*distance)
	}
	a.recorder.Record(ctx, audit.Entry{
		ActorID:  &actor.EmployeeID,
		Action:   audit.ActionGeofenceRejected,
		Category: audit.CategorySecurity,
		Status:   audit.StatusBlocked,
		Details:  withEmployee(diagnostics, targetID),
	})

	if lat == nil || lon == nil {
		return attendance.NewGeofenceRejection(attendance.ErrLocationRequired, diagnostics)
	}
	return attendance.NewGeofenceRejection(attendance.ErrOutsideGeofence, diagnostics)
}

// logViolation is best-effort: the rejection is returned whether or not the row is written.
func (a *AttendanceServiceImpl) logViolation(ctx context.Context, v security.Violation) {
	if err := a.violationRepo.Create(context.WithoutCancel(ctx), v); err != nil {
		slog.Warn("failed to record security violation",
			"type", string(v.Type),
			"details", v.Details,
			"error", err,
		)
	}
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, actor *user.Actor) (attendance.TodayResponse, error) {
	if actor == nil || validator.IsEmpty(actor.EmployeeID) {
		return attendance.TodayResponse{}, auth.ErrUnauthenticated
	}

	today := a.dayOf(a.cfg.Now())
	resp := attendance.TodayResponse{Date: today.Format("2006-01-02")}

	sh, err := a.resolver.ResolveForDate(ctx, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to resolve shift: %w", err)
	}
	if sh != nil {
		s := shift.ToResponse(*sh)
		resp.Shift = &s
	}
	resp.GraceMinutes = a.resolver.ActiveRule(ctx).GraceMinutes

	row, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, actor.EmployeeID, today)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if row != nil {
		d := attendance.ToDailyResponse(*row)
		resp.Attendance = &d
	}

	return resp, nil
}

// ListOffices implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListOffices(ctx context.Context) ([]office.OfficeResponse, error) {
	offices, err := a.officeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}

	resp := make([]office.OfficeResponse, 0, len(offices))
	for _, o := range offices {
		resp = append(resp, office.ToResponse(o, a.cfg.DefaultRadiusMeters))
	}
	return resp, nil
}

// Missing implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Missing(ctx context.Context, req attendance.MissingRequest) (attendance.MissingResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MissingResponse{}, err
	}

	date := a.dayOf(a.cfg.Now())
	if !validator.IsEmpty(req.Date) {
		parsed, _ := validator.IsValidDate(req.Date)
		date = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, a.cfg.Location)
	}

	employees, err := a.employeeRepo.GetActive(ctx)
	if err != nil {
		return attendance.MissingResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	rows, err := a.attendanceRepo.GetByDate(ctx, date)
	if err != nil {
		return attendance.MissingResponse{}, fmt.Errorf("failed to get attendance for date: %w", err)
	}
	byEmployee := make(map[string]attendance.Daily, len(rows))
	for _, r := range rows {
		byEmployee[r.EmployeeID] = r
	}

	leaves, err := a.leaveRepo.GetApprovedInRange(ctx, nil, date, date)
	if err != nil {
		return attendance.MissingResponse{}, fmt.Errorf("failed to get approved leave: %w", err)
	}
	onLeave := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		if l.CoversDate(date) {
			onLeave[l.EmployeeID] = true
		}
	}

	missing := make([]attendance.MissingEmployee, 0)
	for _, emp := range employees {
		if onLeave[emp.ID] {
			continue
		}

		item := attendance.MissingEmployee{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.EmployeeCode,
			FullName:     emp.FullName,
		}

		row, ok := byEmployee[emp.ID]
		switch {
		case !ok || row.FirstIn == nil:
			item.Reason = attendance.MissingNoCheckIn
		case row.LastOut == nil:
			item.Reason = attendance.MissingNoCheckOut
			item.FirstIn = row.FirstIn
		default:
			continue
		}
		missing = append(missing, item)
	}

	return attendance.MissingResponse{
		Date:      date.Format("2006-01-02"),
		Total:     len(missing),
		Employees: missing,
	}, nil
}

// dayOf returns midnight of t's calendar day in the configured location.
func (a *AttendanceServiceImpl) dayOf(t time.Time) time.Time {
	local := t.In(a.cfg.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.cfg.Location)
}

// deviceCoordinates drops coordinates that are absent or out of range.
func deviceCoordinates(lat, lon *float64) (*float64, *float64) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	if !validator.IsValidLatitude(*lat) || !validator.IsValidLongitude(*lon) {
		return nil, nil
	}
	return lat, lon
}

func withEmployee(m map[string]any, employeeID string) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["employee_id"] = employeeID
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func floatOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func roundedOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return round2(*p)
}

func stringOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
