package pipetext

import (
	"context"
	"fmt"
	"io"

	"github.com/drewboyeh/payroll-app/internal/domain/timeclock"
)

var punchColumns = []string{"Store_ID", "Employee_ID", "Start", "End"}

type punchRepositoryImpl struct{}

func NewPunchRepository() timeclock.PunchRepository {
	return &punchRepositoryImpl{}
}

// LoadPunches reads every well-formed punch row. Rows missing a Store_ID or
// Employee_ID key are dropped here: they could never group or join. Start
// and End stay as raw text; the normalizer decides what parses.
func (r *punchRepositoryImpl) LoadPunches(ctx context.Context, src io.Reader) ([]timeclock.PunchRecord, error) {
	t, err := readTable(src, punchColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timeclock.ErrPunchTableInvalid, err)
	}

	punches := make([]timeclock.PunchRecord, 0, len(t.rows))
	for _, row := range t.rows {
		storeID := t.field(row, "Store_ID")
		employeeID := t.field(row, "Employee_ID")
		if storeID == "" || employeeID == "" {
			continue
		}
		punches = append(punches, timeclock.PunchRecord{
			StoreID:    storeID,
			EmployeeID: employeeID,
			Start:      t.field(row, "Start"),
			End:        t.field(row, "End"),
		})
	}

	return punches, nil
}
