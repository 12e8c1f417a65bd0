package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
)

// SubscriptionUseCase handles recurring subscriptions.
type SubscriptionUseCase struct {
	subs     SubscriptionRepository
	maxValue decimal.Decimal
}

func NewSubscriptionUseCase(subs SubscriptionRepository, maxValue decimal.Decimal) *SubscriptionUseCase {
	if maxValue.IsZero() {
		maxValue = DefaultMaxValue
	}
	return &SubscriptionUseCase{subs: subs, maxValue: maxValue}
}

func (uc *SubscriptionUseCase) validate(sub *models.Subscription) (string, bool) {
	if msg, ok := checkTitle(sub.Title); !ok {
		return msg, false
	}
	if msg, ok := checkAmount(sub.Price, uc.maxValue); !ok {
		return msg, false
	}
	if sub.Months < 1 {
		return MsgInvalidDuration, false
	}
	return "", true
}

func (uc *SubscriptionUseCase) SaveSubscription(ctx context.Context, sub models.Subscription) <-chan response.Response[int64] {
	if msg, ok := uc.validate(&sub); !ok {
		return response.Reject[int64](msg)
	}
	slog.Info("SaveSubscription request received", "title", sub.Title)
	return uc.subs.Save(ctx, &sub)
}

func (uc *SubscriptionUseCase) UpdateSubscription(ctx context.Context, sub models.Subscription) <-chan response.Response[int64] {
	if msg, ok := uc.validate(&sub); !ok {
		return response.Reject[int64](msg)
	}
	slog.Info("UpdateSubscription request received", "subscription_id", sub.ID)
	return uc.subs.Update(ctx, &sub)
}

func (uc *SubscriptionUseCase) DeleteSubscription(ctx context.Context, sub models.Subscription) <-chan response.Response[int64] {
	slog.Info("DeleteSubscription request received", "subscription_id", sub.ID)
	return uc.subs.Delete(ctx, &sub)
}

// GetSubscriptions emits every subscription on each change.
func (uc *SubscriptionUseCase) GetSubscriptions(ctx context.Context) <-chan response.Response[[]models.Subscription] {
	return uc.subs.All(ctx)
}
