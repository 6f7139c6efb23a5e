package payroll

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
	"github.com/drewboyeh/payroll-app/internal/domain/roster"
	"github.com/drewboyeh/payroll-app/internal/domain/timeclock"
)

type AnalyzerServiceImpl struct {
	punchRepo    timeclock.PunchRepository
	employeeRepo roster.EmployeeRepository
	storeRepo    roster.StoreRepository
}

func NewAnalyzerService(
	punchRepo timeclock.PunchRepository,
	employeeRepo roster.EmployeeRepository,
	storeRepo roster.StoreRepository,
) payroll.AnalyzerService {
	return &AnalyzerServiceImpl{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		storeRepo:    storeRepo,
	}
}

func (s *AnalyzerServiceImpl) ResolvePeriod(reference time.Time) payroll.Period {
	return resolvePeriod(reference)
}

// AnalyzePayPeriod runs the three-stage pipeline: resolve the window,
// normalize punches to shifts, aggregate proportions. Each stage consumes
// its input and produces a fresh output; nothing on the service is mutated,
// so concurrent calls are independent.
func (s *AnalyzerServiceImpl) AnalyzePayPeriod(ctx context.Context, input payroll.AnalysisInput) (payroll.Analysis, error) {
	if len(input.Punches) == 0 {
		return payroll.Analysis{}, payroll.ErrNoTimeData
	}

	var period payroll.Period
	if input.Start != nil && input.End != nil {
		// Explicit bounds are used verbatim, no day-boundary normalization
		period = payroll.Period{Start: *input.Start, End: *input.End}
	} else {
		period = resolvePeriod(time.Now())
	}

	analysis := payroll.Analysis{
		Period:              period,
		EmployeeNamesJoined: input.Employees != nil,
		StoreDetailsJoined:  input.Stores != nil,
	}

	shifts := normalizeShifts(input.Punches, period)
	if len(shifts) == 0 {
		// Valid empty outcome: nothing matched the window
		return analysis, nil
	}

	analysis.Rows = aggregate(shifts, input.Employees, input.Stores)
	return analysis, nil
}

func (s *AnalyzerServiceImpl) RunAnalysis(ctx context.Context, req payroll.RunRequest) (payroll.Analysis, error) {
	if req.TimeClock == nil {
		return payroll.Analysis{}, payroll.ErrNoTimeData
	}

	punches, err := s.punchRepo.LoadPunches(ctx, req.TimeClock)
	if err != nil {
		return payroll.Analysis{}, err
	}

	input := payroll.AnalysisInput{
		Punches: punches,
		Start:   req.Start,
		End:     req.End,
	}

	if req.Employee != nil {
		employees, err := s.employeeRepo.LoadEmployees(ctx, req.Employee)
		if err != nil {
			return payroll.Analysis{}, err
		}
		input.Employees = employees
	}

	if req.Store != nil {
		stores, err := s.storeRepo.LoadStores(ctx, req.Store)
		if err != nil {
			return payroll.Analysis{}, err
		}
		input.Stores = stores
	}

	return s.AnalyzePayPeriod(ctx, input)
}

type groupKey struct {
	storeID    string
	employeeID string
}

// aggregate turns normalized shifts into the final result rows: per
// employee-store hour sums, per-store totals, proportions, optional roster
// enrichment, and the presentation sort.
func aggregate(shifts []payroll.Shift, employees []roster.EmployeeRecord, stores []roster.StoreRecord) []payroll.ResultRow {
	// Sum hours by (store, employee), preserving first-seen order so ties
	// sort stably later
	totals := make(map[groupKey]float64)
	var order []groupKey
	for _, shift := range shifts {
		key := groupKey{shift.StoreID, shift.EmployeeID}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += shift.HoursWorked
	}

	storeTotals := make(map[string]float64)
	for key, hours := range totals {
		storeTotals[key.storeID] += hours
	}

	employeeNames := employeeLookup(employees)
	storeDetails := storeLookup(stores)

	rows := make([]payroll.ResultRow, 0, len(order))
	for _, key := range order {
		hours := totals[key]
		storeHours := storeTotals[key.storeID]

		row := payroll.ResultRow{
			StoreID:         key.storeID,
			EmployeeID:      key.employeeID,
			HoursWorked:     hours,
			TotalStoreHours: storeHours,
			HoursProportion: hours / storeHours,
			HoursPercentage: hours / storeHours * 100,
		}

		if emp, ok := employeeNames[key]; ok {
			row.FirstName = ptr(emp.FirstName)
			row.LastName = ptr(emp.LastName)
		}
		if store, ok := storeDetails[key.storeID]; ok {
			row.StoreNumber = ptr(store.StoreNumber)
			row.StoreName = ptr(store.StoreName)
		}

		rows = append(rows, row)
	}

	// Store_ID ascending, Hours_Worked descending within each store; stable
	// so equal-hour employees keep their first-seen order
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StoreID != rows[j].StoreID {
			return idLess(rows[i].StoreID, rows[j].StoreID)
		}
		return rows[i].HoursWorked > rows[j].HoursWorked
	})

	return rows
}

// employeeLookup indexes roster rows by (store, employee), first occurrence
// winning, so a duplicated roster row can never multiply result rows.
func employeeLookup(employees []roster.EmployeeRecord) map[groupKey]roster.EmployeeRecord {
	lookup := make(map[groupKey]roster.EmployeeRecord, len(employees))
	for _, emp := range employees {
		key := groupKey{emp.StoreID, emp.EmployeeID}
		if _, ok := lookup[key]; !ok {
			lookup[key] = emp
		}
	}
	return lookup
}

// storeLookup deduplicates the store roster by Store_ID, first occurrence
// winning.
func storeLookup(stores []roster.StoreRecord) map[string]roster.StoreRecord {
	lookup := make(map[string]roster.StoreRecord, len(stores))
	for _, store := range stores {
		if _, ok := lookup[store.StoreID]; !ok {
			lookup[store.StoreID] = store
		}
	}
	return lookup
}

// idLess orders IDs numerically when both sides are integers ("2" before
// "10"), falling back to lexicographic order otherwise.
func idLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}

func ptr(s string) *string {
	return &s
}
