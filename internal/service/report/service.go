package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type Config struct {
	Location *time.Location
	Now      func() time.Time
}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	cfg            Config
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	cfg Config,
) report.ReportService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		cfg:            cfg,
	}
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, actor *user.Actor, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if actor == nil || validator.IsEmpty(actor.EmployeeID) {
		return report.MonthlyReport{}, auth.ErrUnauthenticated
	}
	req, err := s.period(req)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID != actor.EmployeeID && !actor.Can(user.PermissionAttendanceViewAll) {
		return report.MonthlyReport{}, attendance.ErrForbidden
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return report.MonthlyReport{}, err
		}
		return report.MonthlyReport{}, fmt.Errorf("failed to get employee: %w", err)
	}

	from, to := s.monthBounds(req.Year, req.Month)
	return s.employeeMonth(ctx, emp, req, from, to)
}

// PersonalSummary implements report.ReportService.
func (s *ReportServiceImpl) PersonalSummary(ctx context.Context, actor *user.Actor) (report.PersonalSummary, error) {
	if actor == nil || validator.IsEmpty(actor.EmployeeID) {
		return report.PersonalSummary{}, auth.ErrUnauthenticated
	}

	today := s.today()
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.cfg.Location)

	rows, err := s.attendanceRepo.GetByEmployeeInRange(ctx, actor.EmployeeID, from, today)
	if err != nil {
		return report.PersonalSummary{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	leaves, err := s.leaveRepo.GetApprovedInRange(ctx, []string{actor.EmployeeID}, from, today)
	if err != nil {
		return report.PersonalSummary{}, fmt.Errorf("failed to get approved leave: %w", err)
	}

	days, summary := s.synthesize(from, today, today, rows, leaves)

	incomplete := make([]report.DayReport, 0)
	for _, d := range days {
		if d.Status == attendance.StatusMissingCheckout {
			incomplete = append(incomplete, d)
		}
	}

	return report.PersonalSummary{
		EmployeeID:     actor.EmployeeID,
		PeriodMonth:    int(today.Month()),
		PeriodYear:     today.Year(),
		AsOf:           today.Format(dateLayout),
		Summary:        summary,
		IncompleteDays: incomplete,
	}, nil
}

func (s *ReportServiceImpl) employeeMonth(ctx context.Context, emp employee.Employee, req report.MonthlyReportRequest, from, to time.Time) (report.MonthlyReport, error) {
	rows, err := s.attendanceRepo.GetByEmployeeInRange(ctx, emp.ID, from, to)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	leaves, err := s.leaveRepo.GetApprovedInRange(ctx, []string{emp.ID}, from, to)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to get approved leave: %w", err)
	}

	days, summary := s.synthesize(from, to, s.today(), rows, leaves)
	return s.newMonthlyReport(emp, req, from, to, days, summary), nil
}

func (s *ReportServiceImpl) newMonthlyReport(emp employee.Employee, req report.MonthlyReportRequest, from, to time.Time, days []report.DayReport, summary report.AttendanceSummary) report.MonthlyReport {
	return report.MonthlyReport{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		EmployeeName: emp.FullName,
		PeriodMonth:  req.Month,
		PeriodYear:   req.Year,
		PeriodStart:  from.Format(dateLayout),
		PeriodEnd:    to.Format(dateLayout),
		GeneratedAt:  s.cfg.Now().Format(time.RFC3339),
		Summary:      summary,
		Days:         days,
	}
}

// synthesize produces one DayReport per calendar day in [from, to]. Days
// without a checked-in row become LEAVE, ABSENT or UNMARKED relative to today.
func (s *ReportServiceImpl) synthesize(from, to, today time.Time, rows []attendance.Daily, leaves []leave.LeaveRequest) ([]report.DayReport, report.AttendanceSummary) {
	byDate := make(map[string]attendance.Daily, len(rows))
	for _, r := range rows {
		byDate[r.AttendanceDate.Format(dateLayout)] = r
	}
	todayKey := today.Format(dateLayout)

	var summary report.AttendanceSummary
	days := make([]report.DayReport, 0, 31)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		day := report.DayReport{
			Date:      key,
			DayOfWeek: d.Weekday().String(),
		}

		row, ok := byDate[key]
		if ok {
			day.ShiftID = row.ShiftID
		}

		switch {
		case ok && row.FirstIn != nil:
			day.Status = row.Status
			day.FirstIn = row.FirstIn
			day.LastOut = row.LastOut
			day.LateMinutes = row.LateMinutes
			day.WorkedMinutes = row.WorkedMinutes
			if row.LastOut == nil && key < todayKey {
				day.Status = attendance.StatusMissingCheckout
			}
		case coveringLeave(leaves, d) != nil:
			day.Status = attendance.StatusLeave
			day.LeaveType = coveringLeave(leaves, d).LeaveTypeName
		case key >= todayKey:
			day.Status = attendance.StatusUnmarked
		default:
			day.Status = attendance.StatusAbsent
		}

		summary.Add(day)
		days = append(days, day)
	}
	return days, summary
}

func coveringLeave(leaves []leave.LeaveRequest, date time.Time) *leave.LeaveRequest {
	for i := range leaves {
		if leaves[i].CoversDate(date) {
			return &leaves[i]
		}
	}
	return nil
}

func (s *ReportServiceImpl) monthBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.cfg.Location)
	return from, from.AddDate(0, 1, -1)
}

// period defaults and validates the requested month against the configured clock.
func (s *ReportServiceImpl) period(req report.MonthlyReportRequest) (report.MonthlyReportRequest, error) {
	today := s.today()
	req = req.WithDefaults(today)
	if err := req.Validate(today); err != nil {
		return report.MonthlyReportRequest{}, err
	}
	return req, nil
}

func (s *ReportServiceImpl) today() time.Time {
	local := s.cfg.Now().In(s.cfg.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.cfg.Location)
}
