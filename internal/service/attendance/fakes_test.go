package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/security"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

// memStore backs every fake repository. txMu serializes transactions the way
// the row lock does; dataMu guards the maps themselves.
type memStore struct {
	txMu   sync.Mutex
	dataMu sync.Mutex

	daily      map[string]attendance.Daily
	events     []attendance.PunchEvent
	violations []security.Violation
	audits     []audit.Entry
	late       []attendance.LateNotification
	nextID     int

	failUpdate error
}

func newMemStore() *memStore {
	return &memStore{daily: make(map[string]attendance.Daily)}
}

func dailyKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (m *memStore) eventCount() int {
	m.dataMu.Lock()
	defer m.dataMu.Unlock()
	return len(m.events)
}

func (m *memStore) row(employeeID string, date time.Time) (attendance.Daily, bool) {
	m.dataMu.Lock()
	defer m.dataMu.Unlock()
	d, ok := m.daily[dailyKey(employeeID, date)]
	return d, ok
}

type fakeTransactor struct{ store *memStore }

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.store.txMu.Lock()
	defer f.store.txMu.Unlock()

	f.store.dataMu.Lock()
	snapshot := make(map[string]attendance.Daily, len(f.store.daily))
	for k, v := range f.store.daily {
		snapshot[k] = v
	}
	events := len(f.store.events)
	f.store.dataMu.Unlock()

	if err := fn(ctx); err != nil {
		f.store.dataMu.Lock()
		f.store.daily = snapshot
		f.store.events = f.store.events[:events]
		f.store.dataMu.Unlock()
		return err
	}
	return nil
}

type fakeAttendanceRepo struct{ store *memStore }

func (f *fakeAttendanceRepo) LockOrCreate(ctx context.Context, employeeID string, date time.Time, shiftID *int64) (attendance.Daily, error) {
	f.store.dataMu.Lock()
	defer f.store.dataMu.Unlock()

	key := dailyKey(employeeID, date)
	if d, ok := f.store.daily[key]; ok {
		return d, nil
	}
	f.store.nextID++
	d := attendance.Daily{
		ID:             fmt.Sprintf("daily-%d", f.store.nextID),
		EmployeeID:     employeeID,
		AttendanceDate: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		ShiftID:        shiftID,
		Status:         attendance.StatusNotMarked,
	}
	f.store.daily[key] = d
	return d, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, d attendance.Daily) (attendance.Daily, error) {
	f.store.dataMu.Lock()
	defer f.store.dataMu.Unlock()

	if f.store.failUpdate != nil {
		return attendance.Daily{}, f.store.failUpdate
	}
	f.store.daily[dailyKey(d.EmployeeID, d.AttendanceDate)] = d
	return d, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Daily, error) {
	d, ok := f.store.row(employeeID, date)
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Daily, error) {
	var out []attendance.Daily
	for _, d := range f.inRange(from, to) {
		if d.EmployeeID == employeeID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetByDate(ctx context.Context, date time.Time) ([]attendance.Daily, error) {
	return f.inRange(date, date), nil
}

func (f *fakeAttendanceRepo) GetInRange(ctx context.Context, from, to time.Time) ([]attendance.Daily, error) {
	return f.inRange(from, to), nil
}

func (f *fakeAttendanceRepo) inRange(from, to time.Time) []attendance.Daily {
	f.store.dataMu.Lock()
	defer f.store.dataMu.Unlock()

	lo, hi := from.Format("2006-01-02"), to.Format("2006-01-02")
	var out []attendance.Daily
	for _, d := range f.store.daily {
		day := d.AttendanceDate.Format("2006-01-02")
		if day >= lo && day <= hi {
			out = append(out, d)
		}
	}
	return out
}

type fakePunchRepo struct{ store *memStore }

func (f *fakePunchRepo) Create(ctx context.Context, e attendance.PunchEvent) error {
	f.store.dataMu.Lock()
	defer f.store.dataMu.Unlock()
	f.store.events = append(f.store.events, e)
	return nil
}

type fakeViolationRepo struct {
	store *memStore
	err   error
}

func (f *fakeViolationRepo) Create(ctx context.Context, v security.Violation) error {
	if f.err != nil {
		return f.err
	}
	f.store.dataMu.Lock()
	defer f.store.dataMu.Unlock()
	f.store.violations = append(f.store.violations, v)
	return nil
}

type fakeRecorder struct{ store *memStore }

func (f *fakeRecorder) Record(ctx context.Context, e audit.Entry) {
	f.store.dataMu.Lock()
	defer f.store.dataMu.Unlock()
	f.store.audits = append(f.store.audits, e)
}

type fakeNotifier struct{ store *memStore }

func (f *fakeNotifier) NotifyLate(ctx context.Context, n attendance.LateNotification) {
	f.store.dataMu.Lock()
	defer f.store.dataMu.Unlock()
	f.store.late = append(f.store.late, n)
}

type fakeOfficeRepo struct{ offices []office.Office }

func (f *fakeOfficeRepo) GetActive(ctx context.Context) ([]office.Office, error) {
	var out []office.Office
	for _, o := range f.offices {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOfficeRepo) GetActiveByID(ctx context.Context, id string) (office.Office, error) {
	for _, o := range f.offices {
		if o.ID == id && o.IsActive {
			return o, nil
		}
	}
	return office.Office{}, office.ErrOfficeNotFound
}

type fakeEmployeeRepo struct{ employees []employee.Employee }

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetActiveIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error) {
	return nil, nil
}

type fakeLeaveRepo struct{ requests []leave.LeaveRequest }

func (f *fakeLeaveRepo) GetApprovedInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range f.requests {
		if l.Status == leave.LeaveRequestStatusApproved &&
			l.StartDate.Format("2006-01-02") <= to.Format("2006-01-02") &&
			l.EndDate.Format("2006-01-02") >= from.Format("2006-01-02") {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeResolver struct {
	shift *shift.Shift
	rule  shift.Rule
}

func (f *fakeResolver) ResolveForDate(ctx context.Context, date time.Time) (*shift.Shift, error) {
	return f.shift, nil
}

func (f *fakeResolver) ActiveRule(ctx context.Context) shift.Rule {
	return f.rule
}

type fakeOracle struct{ t *time.Time }

func (f *fakeOracle) NetworkTime(ctx context.Context) *time.Time { return f.t }
