package timeclock

// PunchRecord is one raw row from a time clock export: a punch-in/punch-out
// pair for an employee at a store. Start and End hold the timestamp text
// exactly as exported; an empty string means the field was absent. Records
// are immutable once loaded; normalization works on copies.
type PunchRecord struct {
	StoreID    string
	EmployeeID string
	Start      string
	End        string
}
