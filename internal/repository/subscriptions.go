package repository

import (
	"context"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/storage"
)

// SubscriptionRepository exposes subscription persistence as response streams.
type SubscriptionRepository struct {
	store   storage.SubscriptionStore
	metrics *metrics.Metrics
}

func NewSubscriptionRepository(store storage.SubscriptionStore, m *metrics.Metrics) *SubscriptionRepository {
	return &SubscriptionRepository{store: store, metrics: m}
}

func (r *SubscriptionRepository) Save(ctx context.Context, sub *models.Subscription) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntitySubscription, OpSave, func(ctx context.Context) (int64, error) {
		return r.store.SaveSubscription(ctx, sub)
	})
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntitySubscription, OpUpdate, func(ctx context.Context) (int64, error) {
		return r.store.UpdateSubscription(ctx, sub)
	})
}

func (r *SubscriptionRepository) Delete(ctx context.Context, sub *models.Subscription) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntitySubscription, OpDelete, func(ctx context.Context) (int64, error) {
		return r.store.DeleteSubscription(ctx, sub)
	})
}

// All emits every subscription ordered by due date.
func (r *SubscriptionRepository) All(ctx context.Context) <-chan response.Response[[]models.Subscription] {
	return watch(ctx, r.metrics, EntitySubscription, r.store.WatchSubscriptions(ctx))
}
