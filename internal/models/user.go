package models

// User represents a panel user snapshot.
type User struct {
	UUID              string         `json:"uuid"`
	ShortUUID         string         `json:"shortUuid"`
	Username          string         `json:"username"`
	Status            Status         `json:"status"`
	Tag               string         `json:"tag"`
	Description       string         `json:"description"`
	OnlineAt          string         `json:"onlineAt"`
	ExpireAt          string         `json:"expireAt"`
	TrafficLimitBytes int64          `json:"trafficLimitBytes"`
	UsedTrafficBytes  int64          `json:"usedTrafficBytes"`
	SubscriptionURL   string         `json:"subscriptionUrl"`
	Subscription      *Subscription  `json:"subscription"`
	Subscriptions     []Subscription `json:"subscriptions"`
	Inbounds          []InboundRef   `json:"inbounds"`
	ActiveInbounds    []InboundRef   `json:"activeInbounds"`
	ConfigProfileUUID string         `json:"configProfileUuid"`
	ConfigProfile     *ProfileRef    `json:"configProfile"`
}

// Subscription represents one service grant attached to a user.
type Subscription struct {
	UUID              string       `json:"uuid"`
	Status            Status       `json:"status"`
	Inbounds          []InboundRef `json:"inbounds"`
	ConfigProfileUUID string       `json:"configProfileUuid"`
	ConfigProfile     *ProfileRef  `json:"configProfile"`
}

// ProfileUUID resolves the subscription's config profile UUID from either
// the flat field or the nested object.
func (s *Subscription) ProfileUUID() string {
	if s.ConfigProfileUUID != "" {
		return s.ConfigProfileUUID
	}
	if s.ConfigProfile != nil {
		return s.ConfigProfile.UUID
	}
	return ""
}

// SubscriptionItems merges the singular subscription field and the plural
// subscriptions list into one ordered slice, singular first.
func (u *User) SubscriptionItems() []Subscription {
	items := make([]Subscription, 0, len(u.Subscriptions)+1)
	if u.Subscription != nil {
		items = append(items, *u.Subscription)
	}
	items = append(items, u.Subscriptions...)
	return items
}

// ProfileUUID resolves the user-level config profile UUID from either the
// flat field or the nested object.
func (u *User) ProfileUUID() string {
	if u.ConfigProfileUUID != "" {
		return u.ConfigProfileUUID
	}
	if u.ConfigProfile != nil {
		return u.ConfigProfile.UUID
	}
	return ""
}

// Active reports whether the user's status represents an active state.
func (u *User) Active() bool {
	return u.Status.Active()
}
