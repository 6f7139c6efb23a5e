package payroll

import (
	"time"

	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
)

// resolvePeriod returns the default 14-day pay period for a reference date.
// The most recent Sunday before the reference becomes the period end at
// 23:59:59; the start is 13 days earlier at 00:00:00, a 14-day inclusive
// window.
//
// A reference that is itself a Sunday steps back a full 7 days to the
// previous Sunday rather than ending the period today; otherwise the window
// would collapse toward a single day.
func resolvePeriod(reference time.Time) payroll.Period {
	// Monday-indexed weekday shifted so Sunday counts as 7, not 0
	daysSinceSunday := (mondayWeekday(reference) + 1) % 7
	if daysSinceSunday == 0 {
		daysSinceSunday = 7
	}

	sunday := reference.AddDate(0, 0, -daysSinceSunday)
	loc := reference.Location()

	end := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, loc)
	startDay := end.AddDate(0, 0, -13)
	start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, loc)

	return payroll.Period{Start: start, End: end}
}

// mondayWeekday returns the weekday with Monday as 0 and Sunday as 6.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
