package pipetext

import (
	"context"
	"strings"
	"testing"

	"github.com/drewboyeh/payroll-app/internal/domain/roster"
	"github.com/drewboyeh/payroll-app/internal/domain/timeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPunches(t *testing.T) {
	src := strings.NewReader("Store_ID|Employee_ID|Start|End\n" +
		"1|A|2024-01-01 08:00:00|2024-01-01 12:00:00\n" +
		" 2 | B |2024-01-02 09:00:00|2024-01-02 17:00:00\n")

	punches, err := NewPunchRepository().LoadPunches(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, punches, 2)

	assert.Equal(t, timeclock.PunchRecord{
		StoreID:    "1",
		EmployeeID: "A",
		Start:      "2024-01-01 08:00:00",
		End:        "2024-01-01 12:00:00",
	}, punches[0])

	// ID cells are whitespace-trimmed
	assert.Equal(t, "2", punches[1].StoreID)
	assert.Equal(t, "B", punches[1].EmployeeID)
}

func TestLoadPunches_SkipsRowsWithoutKeys(t *testing.T) {
	src := strings.NewReader("Store_ID|Employee_ID|Start|End\n" +
		"|A|2024-01-01 08:00:00|2024-01-01 12:00:00\n" +
		"1||2024-01-01 08:00:00|2024-01-01 12:00:00\n" +
		"1|A|2024-01-01 08:00:00|2024-01-01 12:00:00\n")

	punches, err := NewPunchRepository().LoadPunches(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, punches, 1)
}

func TestLoadPunches_KeepsUnparseableTimestamps(t *testing.T) {
	// Timestamp text is not validated at load; the normalizer decides
	src := strings.NewReader("Store_ID|Employee_ID|Start|End\n" +
		"1|A|garbage|2024-01-01 12:00:00\n")

	punches, err := NewPunchRepository().LoadPunches(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, "garbage", punches[0].Start)
}

func TestLoadPunches_MissingColumn(t *testing.T) {
	src := strings.NewReader("Store_ID|Employee_ID|Start\n1|A|2024-01-01\n")

	_, err := NewPunchRepository().LoadPunches(context.Background(), src)
	assert.ErrorIs(t, err, timeclock.ErrPunchTableInvalid)
}

func TestLoadPunches_CP1252Source(t *testing.T) {
	// cp1252-encoded export: 0x92 in the data must not break the load
	raw := "Store_ID|Employee_ID|Start|End\n" +
		"1|O\x92Brien|2024-01-01 08:00:00|2024-01-01 12:00:00\n"

	punches, err := NewPunchRepository().LoadPunches(context.Background(), strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, "O’Brien", punches[0].EmployeeID)
}

func TestLoadEmployees(t *testing.T) {
	src := strings.NewReader("Employee_ID|First_Name|Last_Name|Store_ID\n" +
		"A|Ana|Lopez|1\n" +
		"|Nobody|Here|1\n")

	employees, err := NewEmployeeRepository().LoadEmployees(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, roster.EmployeeRecord{
		EmployeeID: "A",
		FirstName:  "Ana",
		LastName:   "Lopez",
		StoreID:    "1",
	}, employees[0])
}

func TestLoadEmployees_MissingColumn(t *testing.T) {
	src := strings.NewReader("Employee_ID|First_Name\nA|Ana\n")

	_, err := NewEmployeeRepository().LoadEmployees(context.Background(), src)
	assert.ErrorIs(t, err, roster.ErrEmployeeTableInvalid)
}

func TestLoadStores_KeepsDuplicates(t *testing.T) {
	// Deduplication is a join-time concern; the loader reports the export
	// as-is
	src := strings.NewReader("Store_ID|Store_Number|Store_Name\n" +
		"1|001|Downtown\n" +
		"1|001|Downtown Again\n")

	stores, err := NewStoreRepository().LoadStores(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Downtown", stores[0].StoreName)
	assert.Equal(t, "Downtown Again", stores[1].StoreName)
}

func TestLoadStores_MissingColumn(t *testing.T) {
	src := strings.NewReader("Store_ID|Store_Name\n1|Downtown\n")

	_, err := NewStoreRepository().LoadStores(context.Background(), src)
	assert.ErrorIs(t, err, roster.ErrStoreTableInvalid)
}
