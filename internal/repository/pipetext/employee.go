package pipetext

import (
	"context"
	"fmt"
	"io"

	"github.com/drewboyeh/payroll-app/internal/domain/roster"
)

var employeeColumns = []string{"Employee_ID", "First_Name", "Last_Name", "Store_ID"}

type employeeRepositoryImpl struct{}

func NewEmployeeRepository() roster.EmployeeRepository {
	return &employeeRepositoryImpl{}
}

func (r *employeeRepositoryImpl) LoadEmployees(ctx context.Context, src io.Reader) ([]roster.EmployeeRecord, error) {
	t, err := readTable(src, employeeColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", roster.ErrEmployeeTableInvalid, err)
	}

	employees := make([]roster.EmployeeRecord, 0, len(t.rows))
	for _, row := range t.rows {
		employeeID := t.field(row, "Employee_ID")
		storeID := t.field(row, "Store_ID")
		if employeeID == "" || storeID == "" {
			continue
		}
		employees = append(employees, roster.EmployeeRecord{
			EmployeeID: employeeID,
			FirstName:  t.field(row, "First_Name"),
			LastName:   t.field(row, "Last_Name"),
			StoreID:    storeID,
		})
	}

	return employees, nil
}
