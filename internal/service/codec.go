package service

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec carries plain Go structs as JSON. It replaces Connect's
// protobuf JSON codec under the same name, so browsers and curl can talk
// to the handlers with Content-Type application/json.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// WithJSON is the client option matching the handlers' codec.
func WithJSON() connect.ClientOption {
	return connect.WithCodec(jsonCodec{})
}
