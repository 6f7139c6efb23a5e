package payroll

import (
	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
	"github.com/drewboyeh/payroll-app/internal/domain/timeclock"
	"github.com/drewboyeh/payroll-app/internal/pkg/validator"
)

// normalizeShifts converts raw punch pairs into validated worked-hours
// shifts for the period. A punch survives only when both timestamps parse
// and its Start falls inside the window, bounds inclusive. The End is
// deliberately unbounded: a shift that starts inside the period counts in
// full even when the punch-out spills past the period end.
func normalizeShifts(punches []timeclock.PunchRecord, period payroll.Period) []payroll.Shift {
	shifts := make([]payroll.Shift, 0, len(punches))

	for _, punch := range punches {
		start, ok := validator.ParseClockTimestamp(punch.Start)
		if !ok {
			continue
		}
		end, ok := validator.ParseClockTimestamp(punch.End)
		if !ok {
			continue
		}

		if start.Before(period.Start) || start.After(period.End) {
			continue
		}

		// Clock time wrapped past midnight: the punch-out belongs to the
		// next calendar day.
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}

		hours := end.Sub(start).Hours()
		if hours <= 0 {
			continue
		}
		if hours > payroll.MaxShiftHours {
			hours = payroll.MaxShiftHours
		}

		shifts = append(shifts, payroll.Shift{
			StoreID:     punch.StoreID,
			EmployeeID:  punch.EmployeeID,
			HoursWorked: hours,
		})
	}

	return shifts
}
