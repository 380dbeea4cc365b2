package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "remna-tg-admin/internal/errors"

	"remna-tg-admin/internal/constants"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateUsername checks a candidate panel username.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < constants.MinUsernameLength {
		return &apperrors.ValidationError{Field: "username", Message: "too short"}
	}
	if len(username) > constants.MaxUsernameLength {
		return &apperrors.ValidationError{Field: "username", Message: "too long"}
	}
	if !usernamePattern.MatchString(username) {
		return &apperrors.ValidationError{Field: "username", Message: "only letters, digits, underscore and hyphen are allowed"}
	}

	return nil
}

// ParseTrafficLimitGB parses a traffic limit in gigabytes; zero means unlimited.
func ParseTrafficLimitGB(input string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || value < 0 {
		return 0, &apperrors.ValidationError{Field: "trafficLimit", Message: "enter a non-negative whole number of gigabytes"}
	}
	return value, nil
}

// ParseExpiryDate parses a YYYY-MM-DD expiry date in the future.
func ParseExpiryDate(input string) (time.Time, error) {
	ts, err := time.Parse(constants.DateFormat, strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, &apperrors.ValidationError{Field: "expireAt", Message: "use the YYYY-MM-DD format"}
	}
	if ts.Before(time.Now()) {
		return time.Time{}, &apperrors.ValidationError{Field: "expireAt", Message: "date must be in the future"}
	}
	return ts, nil
}
