package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/sse"
)

const EventAttendanceLate = "attendance.late"

const lookupTimeout = 3 * time.Second

// hrRoles receive late notifications when the rule asks for HR to be told.
var hrRoles = []user.Role{user.RoleOwner, user.RoleHRAdmin}

type LateNotifier struct {
	hub          *sse.Hub
	employeeRepo employee.EmployeeRepository
}

func NewLateNotifier(hub *sse.Hub, employeeRepo employee.EmployeeRepository) attendance.Notifier {
	return &LateNotifier{hub: hub, employeeRepo: employeeRepo}
}

// NotifyLate implements attendance.Notifier.
func (n *LateNotifier) NotifyLate(ctx context.Context, note attendance.LateNotification) {
	event := sse.Event{Event: EventAttendanceLate, Data: note}

	if note.NotifyEmployee {
		n.hub.Publish(note.EmployeeID, event)
	}

	if !note.NotifyHRAdmin {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
	defer cancel()

	ids, err := n.employeeRepo.GetActiveIDsByRoles(ctx, hrRoles)
	if err != nil {
		slog.Warn("failed to resolve HR recipients for late notification",
			"employee_id", note.EmployeeID,
			"error", err,
		)
		return
	}

	recipients := make([]string, 0, len(ids))
	for _, id := range ids {
		// the late employee already got it above
		if id == note.EmployeeID && note.NotifyEmployee {
			continue
		}
		recipients = append(recipients, id)
	}

	delivered := n.hub.PublishToMany(recipients, event)
	slog.Debug("late notification published",
		"employee_id", note.EmployeeID,
		"late_minutes", note.LateMinutes,
		"delivered", delivered,
	)
}
