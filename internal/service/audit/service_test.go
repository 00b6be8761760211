package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditRepo struct {
	entries []audit.Entry
	err     error
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry audit.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func TestRecorder_FillsIDAndTimestamp(t *testing.T) {
	repo := &fakeAuditRepo{}
	r := NewRecorder(repo)

	r.Record(context.Background(), audit.Entry{
		Action:   audit.ActionAttendancePunch,
		Category: audit.CategoryAttendance,
		Status:   audit.StatusSuccess,
	})

	require.Len(t, repo.entries, 1)
	assert.NotEmpty(t, repo.entries[0].ID)
	assert.False(t, repo.entries[0].CreatedAt.IsZero())
}

func TestRecorder_SurvivesCancelledContext(t *testing.T) {
	repo := &fakeAuditRepo{}
	r := NewRecorder(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Record(ctx, audit.Entry{Action: audit.ActionGeofenceRejected})

	assert.Len(t, repo.entries, 1)
}

func TestRecorder_SwallowsErrors(t *testing.T) {
	r := NewRecorder(&fakeAuditRepo{err: errors.New("disk full")})

	assert.NotPanics(t, func() {
		r.Record(context.Background(), audit.Entry{Action: audit.ActionClockTamperBlocked})
	})
}
