package models

// ConversationState represents the state of a conversation with a user
type ConversationState int

const (
	// Default is the initial state
	Default ConversationState = iota
	// AwaitSelectInbound is the state when the operator is selecting an inbound
	AwaitSelectInbound
	// AwaitSelectUser is the state when the operator is selecting a user
	AwaitSelectUser
	// AwaitUserAction is the state when the operator is choosing an action for a user
	AwaitUserAction
	// AwaitCreateUsername is the state when the operator is entering a new username
	AwaitCreateUsername
	// AwaitCreateTrafficLimit is the state when the operator is entering a traffic limit
	AwaitCreateTrafficLimit
	// AwaitCreateExpiry is the state when the operator is entering an expiry date
	AwaitCreateExpiry
	// AwaitConfirmCreate is the state when the operator is confirming user creation
	AwaitConfirmCreate
)

// UserDraft accumulates the fields of the create-user wizard.
type UserDraft struct {
	Username       string
	TrafficLimitGB int
	ExpireAt       string
}

// UserState represents the state of an operator's conversation
type UserState struct {
	State   ConversationState
	Payload *string
	Draft   *UserDraft
}
