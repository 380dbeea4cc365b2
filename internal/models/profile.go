package models

import "encoding/json"

// ConfigProfile represents a named set of inbounds applied to nodes and
// subscriptions.
type ConfigProfile struct {
	UUID     string     `json:"uuid"`
	ID       FlexString `json:"id"`
	Name     string     `json:"name"`
	Inbounds []Inbound  `json:"inbounds"`
}

// Key returns the profile identifier, preferring uuid over id.
func (p *ConfigProfile) Key() string {
	if p.UUID != "" {
		return p.UUID
	}
	return string(p.ID)
}

// ProfileRef references a config profile from a user or subscription
// payload, serialized either as a bare UUID string or as a nested object.
type ProfileRef struct {
	UUID string
}

// UnmarshalJSON accepts both the bare-UUID-string and the object form.
func (p *ProfileRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var uuid string
		if err := json.Unmarshal(data, &uuid); err != nil {
			return err
		}
		p.UUID = uuid
		return nil
	}

	var object struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return nil
	}
	p.UUID = object.UUID
	return nil
}
