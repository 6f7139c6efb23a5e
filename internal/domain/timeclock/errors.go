package timeclock

import "errors"

// Time clock domain errors
var (
	ErrPunchTableInvalid = errors.New("time clock table could not be read")
)
