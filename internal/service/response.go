package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/pkg/api"
)

// codeFor maps an error kind to its Connect code.
func codeFor(kind response.Kind) connect.Code {
	switch kind {
	case response.KindValidation:
		return connect.CodeInvalidArgument
	case response.KindNotFound:
		return connect.CodeNotFound
	case response.KindConflict:
		return connect.CodeAlreadyExists
	case response.KindCancelled:
		return connect.CodeCanceled
	default:
		return connect.CodeInternal
	}
}

// unary waits for the terminal value of a mutation stream. An Error becomes
// a connect.Error carrying only the user-facing message.
func unary[T, R any](ctx context.Context, ch <-chan response.Response[T], conv func(T) *R) (*connect.Response[R], error) {
	r := response.Await(ctx, ch)
	v, ok := r.Value()
	if !ok {
		return nil, connect.NewError(codeFor(r.Kind()), errors.New(r.Message()))
	}
	return connect.NewResponse(conv(v)), nil
}

func rowsResponse(n int64) *api.RowsResponse { return &api.RowsResponse{Rows: n} }

func idResponse(n int64) *api.IDResponse { return &api.IDResponse{ID: n} }

// forward relays a query stream to a server stream until the client goes
// away or the query ends with an Error.
func forward[T, A any](ctx context.Context, open func(ctx context.Context) <-chan response.Response[T], stream *connect.ServerStream[api.Envelope[A]], conv func(T) A) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := open(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case r, ok := <-ch:
			if !ok {
				return nil
			}
			env := response.Match(r,
				func() api.Envelope[A] {
					return api.Envelope[A]{State: api.StateLoading}
				},
				func(v T) api.Envelope[A] {
					a := conv(v)
					return api.Envelope[A]{State: api.StateSuccess, Value: &a}
				},
				func(kind response.Kind, message string) api.Envelope[A] {
					return api.Envelope[A]{State: api.StateError, Kind: kind.String(), Message: message}
				},
			)
			if err := stream.Send(&env); err != nil {
				return fmt.Errorf("failed to send envelope: %w", err)
			}
			if r.Failed() {
				return nil
			}
		}
	}
}
