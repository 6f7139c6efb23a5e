package roster

import "errors"

// Roster domain errors
var (
	ErrEmployeeTableInvalid = errors.New("employee table could not be read")
	ErrStoreTableInvalid    = errors.New("store table could not be read")
)
