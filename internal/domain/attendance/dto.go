package attendance

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	Actor      *user.Actor   `json:"-"`
	OfficeID   string        `json:"office_id"`
	PunchType  string        `json:"punch_type"`
	EmployeeID *string       `json:"employee_id,omitempty"`
	Note       *string       `json:"note,omitempty"`
	ClientTime *FlexibleTime `json:"clientTime,omitempty"`
	Latitude   *float64      `json:"latitude,omitempty"`
	Longitude  *float64      `json:"longitude,omitempty"`
}

// Validate checks the request shape. Order matters: the first failure is returned.
func (r *PunchRequest) Validate() error {
	if validator.IsEmpty(r.OfficeID) {
		return ErrOfficeRequired
	}
	if _, ok := ParsePunchType(r.PunchType); !ok {
		return ErrInvalidPunchType
	}
	return nil
}

// ParsePunchType accepts exactly IN or OUT.
func ParsePunchType(s string) (PunchType, bool) {
	switch PunchType(s) {
	case PunchIn, PunchOut:
		return PunchType(s), true
	}
	return "", false
}

// FlexibleTime decodes either an RFC 3339 string or epoch milliseconds.
// Strings without a zone offset are ambiguous and marked Invalid, as is
// anything else that cannot be read.
type FlexibleTime struct {
	Time    time.Time
	Invalid bool
}

func (f *FlexibleTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			f.Invalid = true
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
		if err != nil {
			f.Invalid = true
			return nil
		}
		f.Time = t
		f.Invalid = false
		return nil
	}

	var ms json.Number
	if err := json.Unmarshal(data, &ms); err != nil {
		f.Invalid = true
		return nil
	}
	n, err := ms.Int64()
	if err != nil {
		f.Invalid = true
		return nil
	}
	f.Time = time.UnixMilli(n)
	f.Invalid = false
	return nil
}

func (f FlexibleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time)
}

type DailyResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeCode    *string    `json:"employee_code,omitempty"`
	EmployeeName    *string    `json:"employee_name,omitempty"`
	AttendanceDate  string     `json:"attendance_date"`
	ShiftID         *int64     `json:"shift_id"`
	Status          Status     `json:"status"`
	FirstIn         *time.Time `json:"first_in"`
	OfficeIDFirstIn *string    `json:"office_id_first_in"`
	LateMinutes     int        `json:"late_minutes"`
	LastOut         *time.Time `json:"last_out"`
	OfficeIDLastOut *string    `json:"office_id_last_out"`
	WorkedMinutes   int        `json:"worked_minutes"`
}

func ToDailyResponse(d Daily) DailyResponse {
	return DailyResponse{
		ID:              d.ID,
		EmployeeID:      d.EmployeeID,
		EmployeeCode:    d.EmployeeCode,
		EmployeeName:    d.EmployeeName,
		AttendanceDate:  d.AttendanceDate.Format("2006-01-02"),
		ShiftID:         d.ShiftID,
		Status:          d.Status,
		FirstIn:         d.FirstIn,
		OfficeIDFirstIn: d.OfficeIDFirstIn,
		LateMinutes:     d.LateMinutes,
		LastOut:         d.LastOut,
		OfficeIDLastOut: d.OfficeIDLastOut,
		WorkedMinutes:   d.WorkedMinutes,
	}
}

type PunchResponse struct {
	Shift        shift.ShiftResponse `json:"shift"`
	GraceMinutes int                 `json:"grace_minutes"`
	Attendance   DailyResponse       `json:"attendance"`
}

type TodayResponse struct {
	Date         string               `json:"date"`
	Shift        *shift.ShiftResponse `json:"shift"`
	GraceMinutes int                  `json:"grace_minutes"`
	Attendance   *DailyResponse       `json:"attendance"`
}

// ========================================
// ADMIN DTOs
// ========================================

type MissingReason string

const (
	MissingNoCheckIn  MissingReason = "NO_CHECK_IN"
	MissingNoCheckOut MissingReason = "NO_CHECK_OUT"
)

type MissingRequest struct {
	Date string `json:"date"`
}

func (r *MissingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MissingEmployee struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeCode string        `json:"employee_code"`
	FullName     string        `json:"full_name"`
	Reason       MissingReason `json:"reason"`
	FirstIn      *time.Time    `json:"first_in,omitempty"`
}

type MissingResponse struct {
	Date      string            `json:"date"`
	Total     int               `json:"total"`
	Employees []MissingEmployee `json:"employees"`
}

// LateNotification is published when a check-in is marked LATE.
type LateNotification struct {
	EmployeeID     string    `json:"employee_id"`
	AttendanceDate string    `json:"attendance_date"`
	FirstIn        time.Time `json:"first_in"`
	LateMinutes    int       `json:"late_minutes"`
	ShiftName      string    `json:"shift_name"`
	NotifyEmployee bool      `json:"-"`
	NotifyHRAdmin  bool      `json:"-"`
}
