package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatusActiveValues(t *testing.T) {
	cases := []struct {
		raw    string
		active bool
	}{
		{`"ACTIVE"`, true},
		{`"active"`, true},
		{`"Enabled"`, true},
		{`"on"`, true},
		{`"TRUE"`, true},
		{`true`, true},
		{`false`, false},
		{`"DISABLED"`, false},
		{`"EXPIRED"`, false},
		{`null`, false},
		{`1`, false},
	}

	for _, tc := range cases {
		var s Status
		if err := json.Unmarshal([]byte(tc.raw), &s); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if s.Active() != tc.active {
			t.Errorf("Status(%s).Active() = %v, want %v", tc.raw, s.Active(), tc.active)
		}
	}
}

func TestInboundRefFromString(t *testing.T) {
	var ref InboundRef
	if err := json.Unmarshal([]byte(`"uuid-1"`), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ref.UUID != "uuid-1" {
		t.Errorf("expected uuid-1, got %q", ref.UUID)
	}
	if !ref.Matches("uuid-1", nil) {
		t.Error("bare string reference should match by uuid")
	}
	if ref.Matches("uuid-2", nil) {
		t.Error("bare string reference should not match a different uuid")
	}
}

func TestInboundRefMatchesByUUID(t *testing.T) {
	var ref InboundRef
	if err := json.Unmarshal([]byte(`{"uuid":"i1","tag":"other"}`), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ref.Matches("i1", nil) {
		t.Error("expected uuid match")
	}
	// UUID presence forbids the tag/port/type fallback.
	target := &Inbound{Tag: "other", Type: "vless"}
	if ref.Matches("i2", target) {
		t.Error("uuid mismatch must not fall back to tag matching")
	}
}

func TestInboundRefTripleFallback(t *testing.T) {
	var ref InboundRef
	if err := json.Unmarshal([]byte(`{"tag":"vless-in","listenPort":443,"type":"vless"}`), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	target := &Inbound{UUID: "i1", Tag: "vless-in", Type: "vless"}
	target.Port = FlexInt{Value: 443, Valid: true}

	if !ref.Matches("i1", target) {
		t.Error("expected tag+port+type match across port/listenPort fields")
	}

	// One disagreeing component breaks the conjunction.
	mismatch := &Inbound{UUID: "i1", Tag: "vless-in", Type: "trojan"}
	mismatch.Port = FlexInt{Value: 443, Valid: true}
	if ref.Matches("i1", mismatch) {
		t.Error("type mismatch should not match")
	}

	if ref.Matches("i1", nil) {
		t.Error("no target record means no fallback available")
	}
}

func TestSubscriptionItemsMergeOrder(t *testing.T) {
	user := User{
		Subscription:  &Subscription{UUID: "s0"},
		Subscriptions: []Subscription{{UUID: "s1"}, {UUID: "s2"}},
	}

	items := user.SubscriptionItems()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].UUID != "s0" || items[1].UUID != "s1" || items[2].UUID != "s2" {
		t.Errorf("unexpected order: %v", items)
	}
}

func TestProfileUUIDResolution(t *testing.T) {
	var user User
	payload := `{"configProfile": {"uuid": "p1"}}`
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if user.ProfileUUID() != "p1" {
		t.Errorf("expected p1 from nested object, got %q", user.ProfileUUID())
	}

	var sub Subscription
	if err := json.Unmarshal([]byte(`{"configProfileUuid":"p2","configProfile":{"uuid":"p3"}}`), &sub); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sub.ProfileUUID() != "p2" {
		t.Errorf("flat field should win, got %q", sub.ProfileUUID())
	}

	// Bare string form of configProfile.
	if err := json.Unmarshal([]byte(`{"configProfile":"p4"}`), &sub); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sub.ConfigProfile == nil || sub.ConfigProfile.UUID != "p4" {
		t.Errorf("expected bare string profile ref, got %+v", sub.ConfigProfile)
	}
}

func TestParseTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	ts, ok := ParseTimestamp("2024-05-01T11:58:00Z")
	if !ok {
		t.Fatal("expected RFC3339 timestamp to parse")
	}
	if !IsRecent(ts, 5*time.Minute, now) {
		t.Error("timestamp 2 minutes ago should be recent")
	}

	ts, ok = ParseTimestamp("2024-05-01T11:50:00.123456")
	if !ok {
		t.Fatal("expected naive timestamp to parse as UTC")
	}
	if IsRecent(ts, 5*time.Minute, now) {
		t.Error("timestamp 10 minutes ago should not be recent")
	}

	if _, ok := ParseTimestamp("not-a-time"); ok {
		t.Error("garbage should not parse")
	}
	if _, ok := ParseTimestamp(""); ok {
		t.Error("empty string should not parse")
	}
}
