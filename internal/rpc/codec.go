// Package rpc defines the document-style RPC surface of the system: two gRPC
// services whose messages are JSON documents rather than protobuf, a Describe
// operation returning a machine-readable manifest that clients fetch at
// startup, and typed clients for the presentation layer.
//
// The JSON codec is registered under the "json" content subtype; the standard
// proto codec remains the default so the stock gRPC health service keeps
// working on the same listener.
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the services speak.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: %w", err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }
