// Package boardrpc is the gRPC contract between the board gateway and the tasks service.
// Messages travel as JSON under the "json" content subtype.
package boardrpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Codec is the content subtype both sides negotiate.
const Codec = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return Codec
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
