package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/usecase"
	"github.com/mmynk/billwise/pkg/api"
)

// SubscriptionService implements the Connect SubscriptionService.
type SubscriptionService struct {
	subs *usecase.SubscriptionUseCase
}

var _ api.SubscriptionServiceHandler = (*SubscriptionService)(nil)

func NewSubscriptionService(subs *usecase.SubscriptionUseCase) *SubscriptionService {
	return &SubscriptionService{subs: subs}
}

func (s *SubscriptionService) SaveSubscription(ctx context.Context, req *connect.Request[api.SaveSubscriptionRequest]) (*connect.Response[api.IDResponse], error) {
	return unary(ctx, s.subs.SaveSubscription(ctx, subscriptionFromAPI(req.Msg.Subscription)), idResponse)
}

func (s *SubscriptionService) UpdateSubscription(ctx context.Context, req *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.RowsResponse], error) {
	return unary(ctx, s.subs.UpdateSubscription(ctx, subscriptionFromAPI(req.Msg.Subscription)), rowsResponse)
}

func (s *SubscriptionService) DeleteSubscription(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.RowsResponse], error) {
	return unary(ctx, s.subs.DeleteSubscription(ctx, models.Subscription{ID: req.Msg.ID}), rowsResponse)
}

func (s *SubscriptionService) WatchSubscriptions(ctx context.Context, req *connect.Request[api.WatchSubscriptionsRequest], stream *connect.ServerStream[api.SubscriptionsEnvelope]) error {
	return forward(ctx, s.subs.GetSubscriptions, stream, func(subs []models.Subscription) []api.Subscription {
		return mapSlice(subs, subscriptionToAPI)
	})
}
