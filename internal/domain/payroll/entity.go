package payroll

import "time"

// Period is the analysis window. Both bounds are inclusive and are tested
// against a punch's Start time only: a shift that punches out after End
// still counts in full.
type Period struct {
	Start time.Time
	End   time.Time
}

// Shift is one normalized work interval derived from a single punch pair.
// Every emitted shift has 0 < HoursWorked <= MaxShiftHours; punches that
// normalize to zero or negative duration are dropped, never emitted.
type Shift struct {
	StoreID     string
	EmployeeID  string
	HoursWorked float64
}

// MaxShiftHours caps any single recorded shift, guarding against bad punch
// data producing absurd durations.
const MaxShiftHours = 16.0

// ResultRow is one employee's share of their store's hours for the period.
// StoreNumber/StoreName are nil unless a store roster was joined;
// FirstName/LastName are nil unless the employee roster matched.
type ResultRow struct {
	StoreID         string
	StoreNumber     *string
	StoreName       *string
	EmployeeID      string
	FirstName       *string
	LastName        *string
	HoursWorked     float64
	TotalStoreHours float64
	HoursProportion float64
	HoursPercentage float64
}

// Analysis is the result of one pay-period run. Rows is empty when no shifts
// survived normalization for the window, a valid outcome distinct from an
// error. EmployeeNamesJoined/StoreDetailsJoined record whether the optional
// roster columns participate in this result at all (they are set whenever
// the roster table was supplied, even if every lookup missed).
type Analysis struct {
	Period              Period
	Rows                []ResultRow
	EmployeeNamesJoined bool
	StoreDetailsJoined  bool
}

// RowCount returns the number of employee-store result rows.
func (a Analysis) RowCount() int {
	return len(a.Rows)
}

// StoreCount returns the number of distinct stores in the result.
func (a Analysis) StoreCount() int {
	seen := make(map[string]struct{})
	for _, row := range a.Rows {
		seen[row.StoreID] = struct{}{}
	}
	return len(seen)
}

// MissingNameCount returns how many result rows have no roster name at all.
// It is always 0 when no employee roster was joined.
func (a Analysis) MissingNameCount() int {
	if !a.EmployeeNamesJoined {
		return 0
	}
	count := 0
	for _, row := range a.Rows {
		if row.FirstName == nil && row.LastName == nil {
			count++
		}
	}
	return count
}
