package payroll

import (
	"time"

	"github.com/drewboyeh/payroll-app/internal/pkg/validator"
)

// ========================================
// PAYROLL ANALYSIS DTOs
// ========================================

// AnalyzeRequest carries the optional explicit window for an analysis run.
// Dates arrive as text from the boundary (form fields or CLI flags). When
// both are empty the default pay period is resolved instead; supplying only
// one side is a validation error.
type AnalyzeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *AnalyzeRequest) Validate() error {
	var errs validator.ValidationErrors

	hasStart := !validator.IsEmpty(r.StartDate)
	hasEnd := !validator.IsEmpty(r.EndDate)

	if hasStart != hasEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date and end_date must be supplied together",
		})
	}

	if hasStart {
		if _, ok := validator.ParseClockTimestamp(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date or timestamp",
			})
		}
	}

	if hasEnd {
		if _, ok := validator.ParseClockTimestamp(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date or timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Window returns the explicit bounds, or nil pointers when the default pay
// period should be resolved. Callers must have validated the request first.
// Explicit bounds are used verbatim: no day-boundary normalization.
func (r *AnalyzeRequest) Window() (start, end *time.Time) {
	if s, ok := validator.ParseClockTimestamp(r.StartDate); ok {
		start = &s
	}
	if e, ok := validator.ParseClockTimestamp(r.EndDate); ok {
		end = &e
	}
	return start, end
}

type ResultRowResponse struct {
	StoreID         string  `json:"store_id"`
	StoreNumber     *string `json:"store_number,omitempty"`
	StoreName       *string `json:"store_name,omitempty"`
	EmployeeID      string  `json:"employee_id"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	HoursWorked     float64 `json:"hours_worked"`
	TotalStoreHours float64 `json:"total_store_hours"`
	HoursProportion float64 `json:"hours_proportion"`
	HoursPercentage float64 `json:"hours_percentage"`
}

type AnalysisResponse struct {
	PeriodStart  string              `json:"period_start"`
	PeriodEnd    string              `json:"period_end"`
	RowCount     int                 `json:"row_count"`
	StoreCount   int                 `json:"store_count"`
	MissingNames int                 `json:"missing_names"`
	Rows         []ResultRowResponse `json:"rows"`
}

type PeriodResponse struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

const periodTimeFormat = "2006-01-02 15:04:05"

// NewAnalysisResponse converts an Analysis to its boundary representation.
func NewAnalysisResponse(a Analysis) AnalysisResponse {
	rows := make([]ResultRowResponse, 0, len(a.Rows))
	for _, row := range a.Rows {
		rows = append(rows, ResultRowResponse{
			StoreID:         row.StoreID,
			StoreNumber:     row.StoreNumber,
			StoreName:       row.StoreName,
			EmployeeID:      row.EmployeeID,
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			HoursWorked:     row.HoursWorked,
			TotalStoreHours: row.TotalStoreHours,
			HoursProportion: row.HoursProportion,
			HoursPercentage: row.HoursPercentage,
		})
	}

	return AnalysisResponse{
		PeriodStart:  a.Period.Start.Format(periodTimeFormat),
		PeriodEnd:    a.Period.End.Format(periodTimeFormat),
		RowCount:     a.RowCount(),
		StoreCount:   a.StoreCount(),
		MissingNames: a.MissingNameCount(),
		Rows:         rows,
	}
}

// NewPeriodResponse converts a resolved Period to its boundary representation.
func NewPeriodResponse(p Period) PeriodResponse {
	return PeriodResponse{
		PeriodStart: p.Start.Format(periodTimeFormat),
		PeriodEnd:   p.End.Format(periodTimeFormat),
	}
}
