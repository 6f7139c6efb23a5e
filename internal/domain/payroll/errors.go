package payroll

import "errors"

// Payroll domain errors
var (
	// ErrNoTimeData signals that the punch table was absent or empty at call
	// time. This is a failure, unlike an analysis that merely matches no
	// shifts in the window.
	ErrNoTimeData = errors.New("no time clock data available")
)
