package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	dailySheet   = "Daily"
)

var summaryHeader = []any{
	"Employee Code", "Employee Name", "Present", "Late", "Missing Checkout",
	"Absent", "Leave", "Unmarked", "Late Minutes", "Worked Minutes",
}

var dailyHeader = []any{
	"Employee Code", "Employee Name", "Date", "Day", "Status",
	"First In", "Last Out", "Late Minutes", "Worked Minutes", "Leave Type",
}

// ExportMonthlyAll implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyAll(ctx context.Context, req report.MonthlyReportRequest) (report.ExportFile, error) {
	req, err := s.period(req)
	if err != nil {
		return report.ExportFile{}, err
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to list employees: %w", err)
	}

	from, to := s.monthBounds(req.Year, req.Month)
	rows, err := s.attendanceRepo.GetInRange(ctx, from, to)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	leaves, err := s.leaveRepo.GetApprovedInRange(ctx, nil, from, to)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to get approved leave: %w", err)
	}

	rowsByEmployee := make(map[string][]attendance.Daily)
	for _, r := range rows {
		rowsByEmployee[r.EmployeeID] = append(rowsByEmployee[r.EmployeeID], r)
	}
	leavesByEmployee := make(map[string][]leave.LeaveRequest)
	for _, l := range leaves {
		leavesByEmployee[l.EmployeeID] = append(leavesByEmployee[l.EmployeeID], l)
	}

	today := s.today()
	reports := make([]report.MonthlyReport, 0, len(employees))
	for _, emp := range employees {
		days, summary := s.synthesize(from, to, today, rowsByEmployee[emp.ID], leavesByEmployee[emp.ID])
		reports = append(reports, s.newMonthlyReport(emp, req, from, to, days, summary))
	}

	content, err := s.renderWorkbook(reports)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		Filename:    fmt.Sprintf("attendance_%04d_%02d.xlsx", req.Year, req.Month),
		ContentType: report.XLSXContentType,
		Content:     content,
	}, nil
}

func (s *ReportServiceImpl) renderWorkbook(reports []report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summaryIdx, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, err
	}
	f.SetActiveSheet(summaryIdx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := writeHeader(f, summarySheet, summaryHeader, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeader(f, dailySheet, dailyHeader, headerStyle); err != nil {
		return nil, err
	}

	dailyRow := 2
	for i, r := range reports {
		sum := r.Summary
		if err := setRow(f, summarySheet, i+2, []any{
			r.EmployeeCode, r.EmployeeName, sum.TotalPresent, sum.TotalLate, sum.TotalMissingCheckout,
			sum.TotalAbsent, sum.TotalLeave, sum.TotalUnmarked, sum.TotalLateMinutes, sum.TotalWorkedMinutes,
		}); err != nil {
			return nil, err
		}

		for _, d := range r.Days {
			if err := setRow(f, dailySheet, dailyRow, []any{
				r.EmployeeCode, r.EmployeeName, d.Date, d.DayOfWeek, string(d.Status),
				s.clock(d.FirstIn), s.clock(d.LastOut), d.LateMinutes, d.WorkedMinutes, deref(d.LeaveType),
			}); err != nil {
				return nil, err
			}
			dailyRow++
		}
	}

	f.SetColWidth(summarySheet, "A", "B", 22)
	f.SetColWidth(summarySheet, "C", "J", 16)
	f.SetColWidth(dailySheet, "A", "B", 22)
	f.SetColWidth(dailySheet, "C", "J", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, header []any, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func (s *ReportServiceImpl) clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(s.cfg.Location).Format("15:04:05")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
