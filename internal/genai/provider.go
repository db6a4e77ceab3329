// Package genai is the boundary to the external generative-text model.
//
// A Request carries plain-language instructions plus a structured input;
// the provider answers with text that callers decode into a fixed output
// schema with Decode. Output that does not match the schema is a hard
// failure of that call.
package genai

import (
	"context"
	"errors"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bairooha/donordesk/internal/metrics"
)

var (
	// ErrNotConfigured is returned when no model credentials are set.
	ErrNotConfigured = errors.New("generative provider not configured")

	// ErrProviderFailure covers transport errors and non-2xx responses.
	ErrProviderFailure = errors.New("generative provider failure")

	// ErrInvalidOutput is returned when the model's answer is missing or
	// does not match the expected schema.
	ErrInvalidOutput = errors.New("generative output failed validation")
)

// Request is a single-shot generation call.
type Request struct {
	// UseCase names the call for logs and metrics (e.g. "fraud").
	UseCase string

	// Instructions is the prompt text, including the output schema.
	Instructions string

	// Input is the structured data the instructions refer to.
	Input *structpb.Struct

	// Temperature overrides the provider default when non-zero.
	Temperature float64
}

// Provider generates text for a request.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Disabled is the Provider used when no credentials are configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

type instrumented struct {
	next    Provider
	metrics *metrics.Metrics
}

// WithMetrics records call counts and latency per use case.
func WithMetrics(p Provider, m *metrics.Metrics) Provider {
	if m == nil {
		return p
	}
	return &instrumented{next: p, metrics: m}
}

func (i *instrumented) Generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := i.next.Generate(ctx, req)
	i.metrics.GenerateDuration.WithLabelValues(req.UseCase).Observe(time.Since(start).Seconds())
	i.metrics.GenerateRequests.WithLabelValues(req.UseCase, outcome(err)).Inc()
	return text, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}
