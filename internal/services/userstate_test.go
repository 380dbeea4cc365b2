package services

import (
	"testing"

	"github.com/sirupsen/logrus"

	"remna-tg-admin/internal/models"
)

func newStateService() *UserStateService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewUserStateService(logger)
}

func TestStateDefaultsWhenUnset(t *testing.T) {
	svc := newStateService()

	state, err := svc.GetState(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.State != models.Default || state.Payload != nil || state.Draft != nil {
		t.Errorf("expected default state, got %+v", state)
	}
}

func TestStateRoundTrip(t *testing.T) {
	svc := newStateService()

	if err := svc.WithConversationState(42, models.AwaitSelectInbound); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := svc.WithPayload(42, "I1"); err != nil {
		t.Fatalf("set payload: %v", err)
	}

	state, err := svc.GetState(42)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.State != models.AwaitSelectInbound {
		t.Errorf("expected AwaitSelectInbound, got %d", state.State)
	}
	if state.Payload == nil || *state.Payload != "I1" {
		t.Errorf("expected payload I1, got %v", state.Payload)
	}

	if err := svc.ClearState(42); err != nil {
		t.Fatalf("clear state: %v", err)
	}
	state, _ = svc.GetState(42)
	if state.State != models.Default {
		t.Errorf("expected default state after clear, got %d", state.State)
	}
}

func TestStateDraftAccumulation(t *testing.T) {
	svc := newStateService()

	if err := svc.WithDraft(7, models.UserDraft{Username: "alice"}); err != nil {
		t.Fatalf("set draft: %v", err)
	}

	state, err := svc.GetState(7)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Draft == nil || state.Draft.Username != "alice" {
		t.Errorf("expected draft for alice, got %+v", state.Draft)
	}
}
