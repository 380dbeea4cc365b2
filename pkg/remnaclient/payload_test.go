package remnaclient

import (
	"encoding/json"
	"testing"
)

func TestDecodeListNamedKey(t *testing.T) {
	p := Unwrap(json.RawMessage(`{"response":{"users":[{"username":"alice"},{"username":"bob"}]}}`), testLogger())

	type row struct {
		Username string `json:"username"`
	}
	rows := decodeList[row](p, "users", testLogger())
	if len(rows) != 2 || rows[0].Username != "alice" || rows[1].Username != "bob" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestDecodeListBareArray(t *testing.T) {
	p := Unwrap(json.RawMessage(`{"data":[1,2,3]}`), testLogger())

	values := decodeList[int](p, "items", testLogger())
	if len(values) != 3 || values[2] != 3 {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestDecodeListNilPayload(t *testing.T) {
	if rows := decodeList[int](nil, "items", testLogger()); rows != nil {
		t.Fatalf("expected nil, got %v", rows)
	}
}

func TestPayloadKinds(t *testing.T) {
	cases := []struct {
		raw  string
		want PayloadKind
	}{
		{`{"a":1}`, KindObject},
		{`[1]`, KindList},
		{`"text"`, KindScalar},
		{`42`, KindScalar},
	}
	for _, tc := range cases {
		p := payloadFrom(json.RawMessage(tc.raw), false, testLogger())
		if p == nil || p.Kind() != tc.want {
			t.Fatalf("payload %s: wrong kind", tc.raw)
		}
	}
}

func TestFieldLookup(t *testing.T) {
	p := payloadFrom(json.RawMessage(`{"total":7}`), false, testLogger())

	value, ok := p.Field("total")
	if !ok || string(value) != "7" {
		t.Fatalf("unexpected field value: %s (ok=%v)", value, ok)
	}
	if _, ok := p.Field("missing"); ok {
		t.Fatal("missing field reported present")
	}
}
