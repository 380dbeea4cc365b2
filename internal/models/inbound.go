package models

import "encoding/json"

// Inbound represents a canonical inbound record exposed by a config profile.
type Inbound struct {
	UUID       string  `json:"uuid"`
	Tag        string  `json:"tag"`
	Type       string  `json:"type"`
	Port       FlexInt `json:"port"`
	ListenPort FlexInt `json:"listenPort"`
	Network    string  `json:"network"`
	Security   string  `json:"security"`
}

// EffectivePort returns the inbound port, accepting either field name.
func (i *Inbound) EffectivePort() (int, bool) {
	if i.Port.Valid {
		return i.Port.Value, true
	}
	if i.ListenPort.Valid {
		return i.ListenPort.Value, true
	}
	return 0, false
}

// Ref converts the canonical record into a reference for matching.
func (i *Inbound) Ref() InboundRef {
	return InboundRef{
		UUID:       i.UUID,
		Tag:        i.Tag,
		Type:       i.Type,
		Port:       i.Port,
		ListenPort: i.ListenPort,
	}
}

// InboundRef references an inbound from a user, subscription or profile
// payload. The backend serializes it either as a bare UUID string or as an
// object carrying uuid, tag, type and port details.
type InboundRef struct {
	UUID       string
	Tag        string
	Type       string
	Port       FlexInt
	ListenPort FlexInt
}

// UnmarshalJSON accepts both the bare-UUID-string and the object form.
func (r *InboundRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var uuid string
		if err := json.Unmarshal(data, &uuid); err != nil {
			return err
		}
		r.UUID = uuid
		return nil
	}

	var object struct {
		UUID       string  `json:"uuid"`
		Tag        string  `json:"tag"`
		Type       string  `json:"type"`
		Port       FlexInt `json:"port"`
		ListenPort FlexInt `json:"listenPort"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		// Tolerate unexpected shapes; an empty ref matches nothing.
		return nil
	}

	r.UUID = object.UUID
	r.Tag = object.Tag
	r.Type = object.Type
	r.Port = object.Port
	r.ListenPort = object.ListenPort
	return nil
}

// EffectivePort returns the referenced port, accepting either field name.
func (r *InboundRef) EffectivePort() (int, bool) {
	if r.Port.Valid {
		return r.Port.Value, true
	}
	if r.ListenPort.Valid {
		return r.ListenPort.Value, true
	}
	return 0, false
}

// Matches reports whether the reference points at the target inbound.
// UUID equality wins when the reference carries a UUID; otherwise tag,
// port and type must all agree with the resolved target record.
func (r *InboundRef) Matches(targetUUID string, target *Inbound) bool {
	if r == nil {
		return false
	}

	if r.UUID != "" {
		return r.UUID == targetUUID
	}

	if target == nil {
		return false
	}

	tagOK := r.Tag != "" && target.Tag != "" && r.Tag == target.Tag

	refPort, refHas := r.EffectivePort()
	tgtPort, tgtHas := target.EffectivePort()
	portOK := refHas && tgtHas && refPort == tgtPort

	typeOK := r.Type != "" && target.Type != "" && r.Type == target.Type

	return tagOK && portOK && typeOK
}
