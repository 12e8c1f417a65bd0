package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const SubscriptionServiceName = "billwise.v1.SubscriptionService"

const (
	SubscriptionServiceSaveSubscriptionProcedure   = "/billwise.v1.SubscriptionService/SaveSubscription"
	SubscriptionServiceUpdateSubscriptionProcedure = "/billwise.v1.SubscriptionService/UpdateSubscription"
	SubscriptionServiceDeleteSubscriptionProcedure = "/billwise.v1.SubscriptionService/DeleteSubscription"
	SubscriptionServiceWatchSubscriptionsProcedure = "/billwise.v1.SubscriptionService/WatchSubscriptions"
)

// SubscriptionServiceHandler is implemented by the server side of
// SubscriptionService.
type SubscriptionServiceHandler interface {
	SaveSubscription(context.Context, *connect.Request[SaveSubscriptionRequest]) (*connect.Response[IDResponse], error)
	UpdateSubscription(context.Context, *connect.Request[UpdateSubscriptionRequest]) (*connect.Response[RowsResponse], error)
	DeleteSubscription(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[RowsResponse], error)
	WatchSubscriptions(context.Context, *connect.Request[WatchSubscriptionsRequest], *connect.ServerStream[SubscriptionsEnvelope]) error
}

func NewSubscriptionServiceHandler(svc SubscriptionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SubscriptionServiceSaveSubscriptionProcedure, connect.NewUnaryHandler(SubscriptionServiceSaveSubscriptionProcedure, svc.SaveSubscription, opts...))
	mux.Handle(SubscriptionServiceUpdateSubscriptionProcedure, connect.NewUnaryHandler(SubscriptionServiceUpdateSubscriptionProcedure, svc.UpdateSubscription, opts...))
	mux.Handle(SubscriptionServiceDeleteSubscriptionProcedure, connect.NewUnaryHandler(SubscriptionServiceDeleteSubscriptionProcedure, svc.DeleteSubscription, opts...))
	mux.Handle(SubscriptionServiceWatchSubscriptionsProcedure, connect.NewServerStreamHandler(SubscriptionServiceWatchSubscriptionsProcedure, svc.WatchSubscriptions, opts...))
	return "/" + SubscriptionServiceName + "/", mux
}

// SubscriptionServiceClient calls a remote SubscriptionService.
type SubscriptionServiceClient struct {
	saveSubscription   *connect.Client[SaveSubscriptionRequest, IDResponse]
	updateSubscription *connect.Client[UpdateSubscriptionRequest, RowsResponse]
	deleteSubscription *connect.Client[DeleteRequest, RowsResponse]
	watchSubscriptions *connect.Client[WatchSubscriptionsRequest, SubscriptionsEnvelope]
}

func NewSubscriptionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SubscriptionServiceClient {
	opts = clientOptions(opts)
	return &SubscriptionServiceClient{
		saveSubscription:   connect.NewClient[SaveSubscriptionRequest, IDResponse](httpClient, baseURL+SubscriptionServiceSaveSubscriptionProcedure, opts...),
		updateSubscription: connect.NewClient[UpdateSubscriptionRequest, RowsResponse](httpClient, baseURL+SubscriptionServiceUpdateSubscriptionProcedure, opts...),
		deleteSubscription: connect.NewClient[DeleteRequest, RowsResponse](httpClient, baseURL+SubscriptionServiceDeleteSubscriptionProcedure, opts...),
		watchSubscriptions: connect.NewClient[WatchSubscriptionsRequest, SubscriptionsEnvelope](httpClient, baseURL+SubscriptionServiceWatchSubscriptionsProcedure, opts...),
	}
}

func (c *SubscriptionServiceClient) SaveSubscription(ctx context.Context, req *connect.Request[SaveSubscriptionRequest]) (*connect.Response[IDResponse], error) {
	return c.saveSubscription.CallUnary(ctx, req)
}

func (c *SubscriptionServiceClient) UpdateSubscription(ctx context.Context, req *connect.Request[UpdateSubscriptionRequest]) (*connect.Response[RowsResponse], error) {
	return c.updateSubscription.CallUnary(ctx, req)
}

func (c *SubscriptionServiceClient) DeleteSubscription(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[RowsResponse], error) {
	return c.deleteSubscription.CallUnary(ctx, req)
}

func (c *SubscriptionServiceClient) WatchSubscriptions(ctx context.Context, req *connect.Request[WatchSubscriptionsRequest]) (*connect.ServerStreamForClient[SubscriptionsEnvelope], error) {
	return c.watchSubscriptions.CallServerStream(ctx, req)
}
