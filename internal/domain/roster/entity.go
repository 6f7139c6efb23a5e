package roster

// EmployeeRecord is one row from the employee roster export, used only to
// attach names to analysis results. An employee working in the period may be
// missing from the roster; results then carry the ID without names.
type EmployeeRecord struct {
	EmployeeID string
	FirstName  string
	LastName   string
	StoreID    string
}

// StoreRecord is one row from the store roster export. The export may list
// the same Store_ID multiple times; consumers deduplicate keeping the first
// occurrence.
type StoreRecord struct {
	StoreID     string
	StoreNumber string
	StoreName   string
}
