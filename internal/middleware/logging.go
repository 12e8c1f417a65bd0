package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

type loggingInterceptor struct{}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, subject, duration, and any error codes/messages.
// Streams are logged when they end.
func LoggingInterceptor() connect.Interceptor {
	return loggingInterceptor{}
}

func (loggingInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		logCall(ctx, req.Spec().Procedure, "RPC", start, err)
		return resp, err
	}
}

func (loggingInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (loggingInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		slog.Debug("Stream opened", "procedure", conn.Spec().Procedure, "subject", GetSubject(ctx))
		err := next(ctx, conn)
		logCall(ctx, conn.Spec().Procedure, "Stream", start, err)
		return err
	}
}

func logCall(ctx context.Context, procedure, kind string, start time.Time, err error) {
	subject := GetSubject(ctx) // empty if pre-auth
	duration := time.Since(start).Milliseconds()

	if err == nil {
		slog.Info(kind+" ok",
			"procedure", procedure,
			"subject", subject,
			"duration_ms", duration,
		)
		return
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		slog.Warn(kind+" error",
			"procedure", procedure,
			"code", connectErr.Code(),
			"error", connectErr.Message(),
			"subject", subject,
			"duration_ms", duration,
		)
		return
	}
	slog.Error(kind+" error",
		"procedure", procedure,
		"error", err,
		"subject", subject,
		"duration_ms", duration,
	)
}
