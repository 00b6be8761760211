package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

// WithDefaults fills an unset month or year from today.
func (r MonthlyReportRequest) WithDefaults(today time.Time) MonthlyReportRequest {
	if r.Month == 0 {
		r.Month = int(today.Month())
	}
	if r.Year == 0 {
		r.Year = today.Year()
	}
	return r
}

// Validate bounds the year by the one after today's.
func (r *MonthlyReportRequest) Validate(today time.Time) error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := today.Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyReport struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	PeriodMonth  int    `json:"period_month"`
	PeriodYear   int    `json:"period_year"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	GeneratedAt  string `json:"generated_at"`

	Summary AttendanceSummary `json:"summary"`
	Days    []DayReport       `json:"days"`
}

type AttendanceSummary struct {
	TotalPresent         int `json:"total_present"`
	TotalLate            int `json:"total_late"`
	TotalMissingCheckout int `json:"total_missing_checkout"`
	TotalAbsent          int `json:"total_absent"`
	TotalLeave           int `json:"total_leave"`
	TotalUnmarked        int `json:"total_unmarked"`
	TotalLateMinutes     int `json:"total_late_minutes"`
	TotalWorkedMinutes   int `json:"total_worked_minutes"`
}

// Add counts one synthesized day.
func (s *AttendanceSummary) Add(d DayReport) {
	switch d.Status {
	case attendance.StatusPresent:
		s.TotalPresent++
	case attendance.StatusLate:
		s.TotalLate++
	case attendance.StatusMissingCheckout:
		s.TotalMissingCheckout++
	case attendance.StatusAbsent:
		s.TotalAbsent++
	case attendance.StatusLeave:
		s.TotalLeave++
	case attendance.StatusUnmarked, attendance.StatusNotMarked:
		s.TotalUnmarked++
	}
	s.TotalLateMinutes += d.LateMinutes
	s.TotalWorkedMinutes += d.WorkedMinutes
}

type DayReport struct {
	Date          string            `json:"date"`
	DayOfWeek     string            `json:"day_of_week"`
	Status        attendance.Status `json:"status"`
	ShiftID       *int64            `json:"shift_id"`
	FirstIn       *time.Time        `json:"first_in"`
	LastOut       *time.Time        `json:"last_out"`
	LateMinutes   int               `json:"late_minutes"`
	WorkedMinutes int               `json:"worked_minutes"`
	LeaveType     *string           `json:"leave_type,omitempty"`
}

// ========================================
// PERSONAL SUMMARY
// ========================================

type PersonalSummary struct {
	EmployeeID     string            `json:"employee_id"`
	PeriodMonth    int               `json:"period_month"`
	PeriodYear     int               `json:"period_year"`
	AsOf           string            `json:"as_of"`
	Summary        AttendanceSummary `json:"summary"`
	IncompleteDays []DayReport       `json:"incomplete_days"`
}

// ========================================
// BULK EXPORT
// ========================================

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
