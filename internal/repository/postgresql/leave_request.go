package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// GetApprovedInRange implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetApprovedInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date, lr.status, lt.name
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.status = $1
		  AND lr.start_date <= $3::date
		  AND lr.end_date >= $2::date
		  AND (cardinality($4::uuid[]) = 0 OR lr.employee_id = ANY($4::uuid[]))
		ORDER BY lr.employee_id, lr.start_date
	`

	if employeeIDs == nil {
		employeeIDs = []string{}
	}

	rows, err := q.Query(ctx, query,
		leave.LeaveRequestStatusApproved,
		from.Format(dateLayout),
		to.Format(dateLayout),
		employeeIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate, &lr.Status, &lr.LeaveTypeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}
