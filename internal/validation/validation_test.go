package validation

import (
	"testing"
	"time"
)

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("alice_01"); err != nil {
		t.Errorf("expected valid username, got %v", err)
	}
	if err := ValidateUsername("ab"); err == nil {
		t.Error("expected error for short username")
	}
	if err := ValidateUsername("has space"); err == nil {
		t.Error("expected error for invalid characters")
	}
}

func TestParseTrafficLimitGB(t *testing.T) {
	if v, err := ParseTrafficLimitGB(" 50 "); err != nil || v != 50 {
		t.Errorf("expected 50, got %d err %v", v, err)
	}
	if v, err := ParseTrafficLimitGB("0"); err != nil || v != 0 {
		t.Errorf("expected 0 (unlimited), got %d err %v", v, err)
	}
	if _, err := ParseTrafficLimitGB("-1"); err == nil {
		t.Error("expected error for negative limit")
	}
	if _, err := ParseTrafficLimitGB("lots"); err == nil {
		t.Error("expected error for non-numeric limit")
	}
}

func TestParseExpiryDate(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	if _, err := ParseExpiryDate(future); err != nil {
		t.Errorf("expected future date to be valid, got %v", err)
	}
	if _, err := ParseExpiryDate("2000-01-01"); err == nil {
		t.Error("expected error for past date")
	}
	if _, err := ParseExpiryDate("01/02/2030"); err == nil {
		t.Error("expected error for wrong format")
	}
}
