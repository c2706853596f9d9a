// Package yaencoding provides helpers for encoding and decoding data using the
// MessagePack format. Each encode/decode returns yaerrors.Error.
//
// Entity lists get dedicated helpers because they are stored as binary blobs:
//
//	blob, err := yaencoding.EncodeEntities(msg.Entities)
//	if err != nil {
//	    return err.Wrap("store message")
//	}
//
//	entities, err := yaencoding.DecodeEntities(blob)
package yaencoding

import (
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/vmihailenco/msgpack/v5"
)

// EncodeMessagePack serializes value using the MessagePack format.
//
// Example:
//
//	data, err := yaencoding.EncodeMessagePack(myStruct)
func EncodeMessagePack(value any) ([]byte, yaerrors.Error) {
	bytes, err := msgpack.Marshal(value)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[ENCODING] failed to marshal %T using message pack format", value),
		)
	}

	return bytes, nil
}

// DecodeMessagePack decodes MessagePack data into a value of type T.
//
// Example:
//
//	val, err := yaencoding.DecodeMessagePack[User](data)
func DecodeMessagePack[T any](bytes []byte) (*T, yaerrors.Error) {
	var res T

	if err := msgpack.Unmarshal(bytes, &res); err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[ENCODING] failed to unmarshal %T from message pack format", res),
		)
	}

	return &res, nil
}

// EncodeEntities serializes an entity list. A nil list is encoded as an empty one.
func EncodeEntities(entities []yaentity.Entity) ([]byte, yaerrors.Error) {
	if entities == nil {
		entities = []yaentity.Entity{}
	}

	return EncodeMessagePack(entities)
}

// DecodeEntities decodes a list produced by EncodeEntities.
func DecodeEntities(data []byte) ([]yaentity.Entity, yaerrors.Error) {
	entities, err := DecodeMessagePack[[]yaentity.Entity](data)
	if err != nil {
		return nil, err.Wrap("[ENCODING] failed to decode entities")
	}

	return *entities, nil
}
