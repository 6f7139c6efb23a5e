package pipetext

import (
	"context"
	"fmt"
	"io"

	"github.com/drewboyeh/payroll-app/internal/domain/roster"
)

var storeColumns = []string{"Store_ID", "Store_Number", "Store_Name"}

type storeRepositoryImpl struct{}

func NewStoreRepository() roster.StoreRepository {
	return &storeRepositoryImpl{}
}

// LoadStores keeps duplicate Store_ID rows as exported; the aggregator
// deduplicates at join time, first occurrence winning.
func (r *storeRepositoryImpl) LoadStores(ctx context.Context, src io.Reader) ([]roster.StoreRecord, error) {
	t, err := readTable(src, storeColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", roster.ErrStoreTableInvalid, err)
	}

	stores := make([]roster.StoreRecord, 0, len(t.rows))
	for _, row := range t.rows {
		storeID := t.field(row, "Store_ID")
		if storeID == "" {
			continue
		}
		stores = append(stores, roster.StoreRecord{
			StoreID:     storeID,
			StoreNumber: t.field(row, "Store_Number"),
			StoreName:   t.field(row, "Store_Name"),
		})
	}

	return stores, nil
}
