package genai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Validator is implemented by output types with constraints beyond their
// JSON shape.
type Validator interface {
	Validate() error
}

// Decode extracts the JSON object from a model answer and decodes it
// into T. Unknown fields, trailing data and failed validation are all
// reported as ErrInvalidOutput.
func Decode[T any](raw string) (T, error) {
	var out T
	fragment := extractJSONFragment(raw)
	if fragment == "" {
		return out, fmt.Errorf("%w: empty payload", ErrInvalidOutput)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(fragment)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if dec.More() {
		return out, fmt.Errorf("%w: trailing data after object", ErrInvalidOutput)
	}
	if v, ok := any(&out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return out, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

func extractJSONFragment(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return ""
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}

func trimCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
