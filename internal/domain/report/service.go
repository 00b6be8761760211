package report

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

// ReportService defines attendance report generation
type ReportService interface {
	// MonthlyReport builds the per-day report of one employee. Non-admin
	// actors may only read their own.
	MonthlyReport(ctx context.Context, actor *user.Actor, req MonthlyReportRequest) (MonthlyReport, error)

	// PersonalSummary aggregates the caller's current month up to today
	PersonalSummary(ctx context.Context, actor *user.Actor) (PersonalSummary, error)

	// ExportMonthlyAll renders every active employee's month as an xlsx workbook
	ExportMonthlyAll(ctx context.Context, req MonthlyReportRequest) (ExportFile, error)
}
