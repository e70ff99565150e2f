package api

import "encoding/json"

// CodecName is the Connect codec name the services are served with. It
// matches the "application/json" and "application/connect+json" content types.
const CodecName = "json"

// JSONCodec marshals the plain Go messages in this package with
// encoding/json. It replaces Connect's protobuf JSON codec, which only
// accepts generated proto.Message values.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
