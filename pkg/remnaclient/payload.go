package remnaclient

import (
	"bytes"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// PayloadKind discriminates the JSON shape carried by a Payload.
type PayloadKind int

const (
	// KindScalar is a string, number or boolean payload
	KindScalar PayloadKind = iota
	// KindObject is a JSON object payload
	KindObject
	// KindList is a JSON array payload
	KindList
)

// Payload is an unwrapped API response body. A nil *Payload means the
// request produced no usable result; callers cannot tell not-found, empty
// body, error payload and transport failure apart.
type Payload struct {
	raw json.RawMessage
}

// Kind returns the JSON shape of the payload.
func (p *Payload) Kind() PayloadKind {
	switch p.raw[0] {
	case '{':
		return KindObject
	case '[':
		return KindList
	default:
		return KindScalar
	}
}

// Raw returns the raw unwrapped JSON.
func (p *Payload) Raw() json.RawMessage {
	return p.raw
}

// Object returns the payload as a field map when it is a JSON object.
func (p *Payload) Object() (map[string]json.RawMessage, bool) {
	if p.Kind() != KindObject {
		return nil, false
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(p.raw, &object); err != nil {
		return nil, false
	}
	return object, true
}

// List returns the payload elements when it is a JSON array.
func (p *Payload) List() ([]json.RawMessage, bool) {
	if p.Kind() != KindList {
		return nil, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(p.raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

// Field returns a named field when the payload is a JSON object.
func (p *Payload) Field(name string) (json.RawMessage, bool) {
	object, ok := p.Object()
	if !ok {
		return nil, false
	}
	value, ok := object[name]
	return value, ok
}

// Decode unmarshals the payload into v.
func (p *Payload) Decode(v any) error {
	return json.Unmarshal(p.raw, v)
}

// Unwrap normalizes the backend's envelope shapes into a single payload.
// Checked in order: non-objects pass through; {response: T} and {data: T}
// unwrap to T; {success: false, error: ...} logs the error and yields nil;
// any other object passes through unchanged.
func Unwrap(raw json.RawMessage, logger *logrus.Logger) *Payload {
	return payloadFrom(raw, true, logger)
}

func payloadFrom(raw json.RawMessage, unwrap bool, logger *logrus.Logger) *Payload {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if !unwrap || trimmed[0] != '{' {
		return &Payload{raw: trimmed}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		logger.Errorf("Failed to parse response envelope: %v", err)
		return nil
	}

	if value, ok := envelope["response"]; ok {
		return payloadFrom(value, false, logger)
	}
	if value, ok := envelope["data"]; ok {
		return payloadFrom(value, false, logger)
	}
	if success, ok := envelope["success"]; ok && bytes.Equal(bytes.TrimSpace(success), []byte("false")) {
		if errValue, ok := envelope["error"]; ok {
			logger.Errorf("API error payload: %s", errValue)
			return nil
		}
	}

	return &Payload{raw: trimmed}
}

// decodeList extracts a named key from an object payload and decodes it as
// a list; when the key is absent or the payload is already a bare list, the
// payload itself is decoded. Returns nil on any decode failure.
func decodeList[T any](p *Payload, key string, logger *logrus.Logger) []T {
	if p == nil {
		return nil
	}

	raw := p.raw
	if value, ok := p.Field(key); ok {
		raw = value
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Errorf("Failed to decode %s list: %v", key, err)
		return nil
	}
	return items
}
