package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Status holds a panel status value that may arrive as a string or a boolean.
type Status string

// UnmarshalJSON accepts string, boolean and numeric status representations.
func (s *Status) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case nil:
		*s = ""
	case bool:
		*s = Status(strconv.FormatBool(v))
	case string:
		*s = Status(v)
	case float64:
		*s = Status(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		*s = ""
	}
	return nil
}

// Active reports whether the value represents an active/enabled state.
// Recognized values: ACTIVE, ENABLED, TRUE, ON (case-insensitive).
func (s Status) Active() bool {
	switch strings.ToUpper(strings.TrimSpace(string(s))) {
	case "ACTIVE", "ENABLED", "TRUE", "ON":
		return true
	}
	return false
}

// FlexInt holds an integer that may arrive as a JSON number or numeric string.
type FlexInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON accepts numbers and numeric strings.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case float64:
		f.Value = int(v)
		f.Valid = true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		f.Value = n
		f.Valid = true
	}
	return nil
}

// FlexString holds a string that may arrive as a JSON string or number.
type FlexString string

// UnmarshalJSON accepts strings and numbers.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case string:
		*f = FlexString(v)
	case float64:
		*f = FlexString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return nil
}
