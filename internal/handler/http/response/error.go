package response

import (
	"errors"
	"net/http"

	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
	"github.com/drewboyeh/payroll-app/internal/domain/report"
	"github.com/drewboyeh/payroll-app/internal/domain/roster"
	"github.com/drewboyeh/payroll-app/internal/domain/timeclock"
	"github.com/drewboyeh/payroll-app/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoTimeData):
		BadRequest(w, "No time clock data available", nil)

	// Table load errors: the wrapped cause names the missing columns or
	// decode failure, so pass it through
	case errors.Is(err, timeclock.ErrPunchTableInvalid),
		errors.Is(err, roster.ErrEmployeeTableInvalid),
		errors.Is(err, roster.ErrStoreTableInvalid):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported report format", nil)
	case errors.Is(err, report.ErrNothingToExport):
		BadRequest(w, "Analysis has no rows to export", nil)
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
