package assist

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bairooha/donordesk/internal/genai"
)

// Assistant produces the copy-writing use cases. Unlike fraud
// assessment, failures are returned to the caller so the user action
// that triggered them can show an error.
type Assistant struct {
	provider genai.Provider
}

// NewAssistant creates an Assistant over provider.
func NewAssistant(provider genai.Provider) *Assistant {
	return &Assistant{provider: provider}
}

// generate runs one request and decodes the answer into T.
func generate[T any](ctx context.Context, p genai.Provider, useCase, instructions string, input map[string]any, temperature float64) (T, error) {
	var zero T
	in, err := structpb.NewStruct(input)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s input: %w", useCase, err)
	}
	text, err := p.Generate(ctx, genai.Request{
		UseCase:      useCase,
		Instructions: instructions,
		Input:        in,
		Temperature:  temperature,
	})
	if err != nil {
		slog.WarnContext(ctx, "Generation failed", "use_case", useCase, "error", err)
		return zero, fmt.Errorf("%s generation failed: %w", useCase, err)
	}
	out, err := genai.Decode[T](text)
	if err != nil {
		slog.WarnContext(ctx, "Generation returned invalid output", "use_case", useCase, "error", err)
		return zero, fmt.Errorf("%s generation failed: %w", useCase, err)
	}
	return out, nil
}
