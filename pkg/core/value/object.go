package value

import (
	"bytes"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// objectField is the document field that holds a host value marshalled by NewObject.
const objectField = "v"

// Object is an opaque host value. Its payload is kept as raw bytes and written
// base64-encoded under the "python_object" type name. Payloads created with
// [NewObject] are BSON documents and can be decoded back with [Object.Decode].
type Object struct {
	data []byte
}

// NewObject marshals v into a BSON document payload.
func NewObject(v any) (Object, error) {
	data, err := bson.Marshal(bson.D{{Key: objectField, Value: v}})
	if err != nil {
		return Object{}, fmt.Errorf("marshal object: %w", err)
	}
	return Object{data: data}, nil
}

// ObjectFromBytes wraps an already-encoded payload. The bytes are copied.
func ObjectFromBytes(data []byte) Object {
	return Object{data: bytes.Clone(data)}
}

// Bytes returns a copy of the raw payload.
func (o Object) Bytes() []byte { return bytes.Clone(o.data) }

// Len returns the payload size in bytes.
func (o Object) Len() int { return len(o.data) }

// Decode unmarshals a payload created by [NewObject] into dst.
func (o Object) Decode(dst any) error {
	raw := bson.Raw(o.data)
	if err := raw.Validate(); err != nil {
		return fmt.Errorf("object payload is not BSON: %w", err)
	}
	rv, err := raw.LookupErr(objectField)
	if err != nil {
		return fmt.Errorf("object payload: %w", err)
	}
	return rv.Unmarshal(dst)
}

// String describes the payload without exposing its content.
func (o Object) String() string {
	return fmt.Sprintf("<object %d bytes>", len(o.data))
}
