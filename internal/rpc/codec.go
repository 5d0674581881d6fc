// Package rpc holds everything the catsocial gRPC server and its clients
// share: the service and method names, the request/response messages and the
// JSON codec they travel in.
//
// There is no protobuf schema. Messages are plain Go structs encoded as JSON
// under the "json" content-subtype, so any gRPC client that sets
// grpc.CallContentSubtype(rpc.CodecName) can talk to the server.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the JSON codec.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
