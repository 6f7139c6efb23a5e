package report

import "errors"

// Report domain errors
var (
	ErrNothingToExport   = errors.New("analysis has no rows to export")
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrReportNotFound    = errors.New("report not found")
)
