package roster

import (
	"context"
	"io"
)

// EmployeeRepository loads employee roster records from a pipe-delimited
// export source.
type EmployeeRepository interface {
	LoadEmployees(ctx context.Context, src io.Reader) ([]EmployeeRecord, error)
}

// StoreRepository loads store roster records from a pipe-delimited export
// source. Duplicate Store_ID rows are preserved as exported; deduplication
// happens at join time.
type StoreRepository interface {
	LoadStores(ctx context.Context, src io.Reader) ([]StoreRecord, error)
}
