package commands

// TelegramCommands contains all commands for the Telegram bot
const (
	// Main commands
	Start  = "/start"
	Cancel = "Cancel"

	// Navigation commands
	ReturnToMainMenu = "Return to Main Menu"

	// Administrator commands
	Users       = "Users"
	CreateUser  = "Create User"
	Inbounds    = "Inbounds"
	Nodes       = "Nodes"
	OnlineUsers = "Online Users"

	// User action commands
	ShowSubscription = "Show Subscription"
	EnableUser       = "Enable"
	DisableUser      = "Disable"

	// Confirmation commands
	Confirm = "Confirm"

	// Demo user commands
	About = "About"
	Help  = "Help"

	// Input shortcuts
	Unlimited = "Unlimited"
	NoExpiry  = "No Expiry"
)
