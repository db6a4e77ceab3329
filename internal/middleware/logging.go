package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/bairooha/donordesk/internal/metrics"
)

// Observer is a Connect interceptor that logs every RPC and, when
// metrics are set, records its count and latency. Streams are observed
// once, when the handler returns.
type Observer struct {
	metrics *metrics.Metrics
}

// NewObserver creates an Observer. m may be nil.
func NewObserver(m *metrics.Metrics) *Observer {
	return &Observer{metrics: m}
}

func (o *Observer) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		o.observe(ctx, req.Spec().Procedure, start, err)
		return resp, err
	}
}

func (o *Observer) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (o *Observer) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		err := next(ctx, conn)
		o.observe(ctx, conn.Spec().Procedure, start, err)
		return err
	}
}

func (o *Observer) observe(ctx context.Context, procedure string, start time.Time, err error) {
	elapsed := time.Since(start)
	duration := elapsed.Milliseconds()
	code := "ok"

	if err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			code = connectErr.Code().String()
			slog.WarnContext(ctx, "RPC error",
				"procedure", procedure,
				"code", connectErr.Code(),
				"error", connectErr.Message(),
				"duration_ms", duration,
			)
		} else {
			code = connect.CodeOf(err).String()
			slog.ErrorContext(ctx, "RPC error",
				"procedure", procedure,
				"error", err,
				"duration_ms", duration,
			)
		}
	} else {
		slog.InfoContext(ctx, "RPC ok",
			"procedure", procedure,
			"duration_ms", duration,
		)
	}

	if o.metrics != nil {
		o.metrics.RPCRequests.WithLabelValues(procedure, code).Inc()
		o.metrics.RPCDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
	}
}
