package attendance

import (
	"time"
)

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

type Source string

const (
	SourceWeb   Source = "WEB"
	SourceAdmin Source = "ADMIN"
)

type Status string

const (
	StatusNotMarked       Status = "NOT_MARKED"
	StatusPresent         Status = "PRESENT"
	StatusLate            Status = "LATE"
	StatusMissingCheckout Status = "MISSING_CHECKOUT"
	StatusAbsent          Status = "ABSENT"
	StatusLeave           Status = "LEAVE"
	StatusUnmarked        Status = "UNMARKED"
)

// PunchEvent is the append-only log of every accepted punch.
type PunchEvent struct {
	ID                 string
	EmployeeID         string
	OfficeID           string
	PunchType          PunchType
	PunchedAt          time.Time
	Source             Source
	MarkedByEmployeeID *string
	Note               *string
	Latitude           *float64
	Longitude          *float64
	DistanceFromOffice *float64
	MatchedOfficeID    *string
}

// Daily is the per-employee-per-day aggregate, unique on (EmployeeID, AttendanceDate).
type Daily struct {
	ID              string
	EmployeeID      string
	AttendanceDate  time.Time
	ShiftID         *int64
	Status          Status
	FirstIn         *time.Time
	OfficeIDFirstIn *string
	LateMinutes     int
	LastOut         *time.Time
	OfficeIDLastOut *string
	WorkedMinutes   int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeCode *string
	EmployeeName *string
}

// CheckIn records the first IN of the day. Minutes past shiftStart only count
// as late when they strictly exceed graceMinutes.
func (d *Daily) CheckIn(now, shiftStart time.Time, graceMinutes int, officeID string) error {
	if d.FirstIn != nil {
		return ErrAlreadyCheckedIn
	}

	late := wholeMinutes(now.Sub(shiftStart))
	if late > graceMinutes {
		d.Status = StatusLate
		d.LateMinutes = late
	} else {
		d.Status = StatusPresent
		d.LateMinutes = 0
	}

	in := now
	d.FirstIn = &in
	d.OfficeIDFirstIn = &officeID
	return nil
}

// CheckOut records the single OUT of the day. A LATE status survives check-out.
func (d *Daily) CheckOut(now time.Time, officeID string) error {
	if d.FirstIn == nil {
		return ErrCheckOutBeforeCheckIn
	}
	if d.LastOut != nil {
		return ErrAlreadyCheckedOut
	}

	d.WorkedMinutes = wholeMinutes(now.Sub(*d.FirstIn))
	if d.Status == StatusNotMarked {
		d.Status = StatusPresent
	}

	out := now
	d.LastOut = &out
	d.OfficeIDLastOut = &officeID
	return nil
}

// wholeMinutes floors a duration to minutes and clamps negatives to zero.
func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
