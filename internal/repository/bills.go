package repository

import (
	"context"
	"time"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/storage"
)

// BillRepository exposes bill persistence as response streams.
type BillRepository struct {
	store   storage.BillStore
	metrics *metrics.Metrics
}

// NewBillRepository creates a BillRepository. m may be nil.
func NewBillRepository(store storage.BillStore, m *metrics.Metrics) *BillRepository {
	return &BillRepository{store: store, metrics: m}
}

// Save inserts bill and emits its ID.
func (r *BillRepository) Save(ctx context.Context, bill *models.Bill) <-chan response.Response[string] {
	return mutate(ctx, r.metrics, EntityBill, OpSave, func(ctx context.Context) (string, error) {
		return r.store.SaveBill(ctx, bill)
	})
}

// Update overwrites bill and emits the number of rows changed.
func (r *BillRepository) Update(ctx context.Context, bill *models.Bill) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityBill, OpUpdate, func(ctx context.Context) (int64, error) {
		return r.store.UpdateBill(ctx, bill)
	})
}

// Delete removes bill and emits the number of rows removed.
func (r *BillRepository) Delete(ctx context.Context, bill *models.Bill) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityBill, OpDelete, func(ctx context.Context) (int64, error) {
		return r.store.DeleteBill(ctx, bill)
	})
}

// Find looks a bill up by ID.
func (r *BillRepository) Find(ctx context.Context, id string) <-chan response.Response[models.Bill] {
	return find(ctx, r.metrics, EntityBill, func(ctx context.Context) (models.Bill, error) {
		bill, err := r.store.GetBill(ctx, id)
		if err != nil {
			return models.Bill{}, err
		}
		return *bill, nil
	})
}

// All emits every bill, most recent first.
func (r *BillRepository) All(ctx context.Context) <-chan response.Response[[]models.Bill] {
	return watch(ctx, r.metrics, EntityBill, r.store.WatchBills(ctx))
}

// ByDate emits the bills dated within [start, end].
func (r *BillRepository) ByDate(ctx context.Context, start, end time.Time) <-chan response.Response[[]models.Bill] {
	return watch(ctx, r.metrics, EntityBill, r.store.WatchBillsByDate(ctx, start, end))
}

// ByText emits the bills whose title, origin or description contains needle.
func (r *BillRepository) ByText(ctx context.Context, needle string) <-chan response.Response[[]models.Bill] {
	return watch(ctx, r.metrics, EntityBill, r.store.WatchBillsByText(ctx, needle))
}
