package report

import "errors"

var (
	ErrEmployeeRequired       = errors.New("employee_id is required")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
