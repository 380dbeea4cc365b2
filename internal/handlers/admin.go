package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"remna-tg-admin/internal/commands"
	"remna-tg-admin/internal/config"
	"remna-tg-admin/internal/constants"
	"remna-tg-admin/internal/models"
	"remna-tg-admin/internal/permissions"
	"remna-tg-admin/internal/services"
	"remna-tg-admin/internal/validation"
	"remna-tg-admin/pkg/remnaclient"
)

// AdminHandler handles admin commands
type AdminHandler struct {
	BaseHandler
	commandHandlers map[string]func(context.Context, telebot.Context) error
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	panelService *services.PanelService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	config *config.Config,
	logger *logrus.Logger,
) *AdminHandler {
	handler := &AdminHandler{
		BaseHandler: NewBaseHandler(panelService, stateService, qrService, config, logger),
	}

	handler.initializeCommands()
	return handler
}

// CanHandle checks if the handler can handle the given access type
func (h *AdminHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.Admin
}

// Handle handles a message from Telegram
func (h *AdminHandler) Handle(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	userState, err := h.stateService.GetState(userID)
	if err != nil {
		h.logger.Errorf("Failed to get user state: %v", err)
		return err
	}

	switch userState.State {
	case models.Default:
		return h.handleDefaultState(ctx, c)
	case models.AwaitSelectInbound:
		return h.processSelectInbound(ctx, c)
	case models.AwaitSelectUser:
		return h.processSelectUser(ctx, c)
	case models.AwaitUserAction:
		return h.processUserAction(ctx, c)
	case models.AwaitCreateUsername:
		return h.processCreateUsername(ctx, c)
	case models.AwaitCreateTrafficLimit:
		return h.processCreateTrafficLimit(ctx, c)
	case models.AwaitCreateExpiry:
		return h.processCreateExpiry(ctx, c)
	case models.AwaitConfirmCreate:
		return h.processConfirmCreate(ctx, c)
	default:
		h.logger.Warnf("Unknown state: %d", userState.State)
		return h.handleDefaultState(ctx, c)
	}
}

// initializeCommands initializes the command handlers
func (h *AdminHandler) initializeCommands() {
	h.commandHandlers = map[string]func(context.Context, telebot.Context) error{
		commands.Start:            h.handleStart,
		commands.Users:            h.handleUsers,
		commands.CreateUser:       h.handleCreateUser,
		commands.Inbounds:         h.handleInbounds,
		commands.Nodes:            h.handleNodes,
		commands.OnlineUsers:      h.handleOnlineUsers,
		commands.ReturnToMainMenu: h.handleStart,
		commands.Cancel:           h.handleStart,
	}
}

// handleDefaultState handles the default state
func (h *AdminHandler) handleDefaultState(ctx context.Context, c telebot.Context) error {
	if handler, ok := h.commandHandlers[c.Text()]; ok {
		return handler(ctx, c)
	}

	return h.handleStart(ctx, c)
}

// handleStart handles the /start command
func (h *AdminHandler) handleStart(ctx context.Context, c telebot.Context) error {
	if err := h.stateService.ClearState(c.Sender().ID); err != nil {
		h.logger.Errorf("Failed to clear user state: %v", err)
		return err
	}

	markup := h.createMainKeyboard(permissions.Admin)
	return h.sendTextMessage(c, "Welcome to Remnawave Admin Bot!", markup)
}

// handleUsers handles the Users command
func (h *AdminHandler) handleUsers(ctx context.Context, c telebot.Context) error {
	users := h.panelService.GetUsers(ctx)
	if len(users) == 0 {
		return h.sendTextMessage(c, "No users found or the panel API is unavailable.", h.createMainKeyboard(permissions.Admin))
	}

	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Username)
	}

	if err := h.stateService.WithConversationState(c.Sender().ID, models.AwaitSelectUser); err != nil {
		h.logger.Errorf("Failed to set state: %v", err)
		return err
	}

	text := fmt.Sprintf("Found %d users. Select one:", len(users))
	return h.sendTextMessage(c, text, h.createListKeyboard(names))
}

// processSelectUser handles username selection
func (h *AdminHandler) processSelectUser(ctx context.Context, c telebot.Context) error {
	if c.Text() == commands.ReturnToMainMenu {
		return h.handleStart(ctx, c)
	}

	user := h.findUserByUsername(ctx, c.Text())
	if user == nil {
		return h.sendTextMessage(c, "User not found. Select a user from the list.", h.createReturnKeyboard())
	}

	if err := h.stateService.WithPayload(c.Sender().ID, user.UUID); err != nil {
		h.logger.Errorf("Failed to set payload: %v", err)
		return err
	}
	if err := h.stateService.WithConversationState(c.Sender().ID, models.AwaitUserAction); err != nil {
		h.logger.Errorf("Failed to set state: %v", err)
		return err
	}

	return h.sendTextMessage(c, h.formatUser(user), h.createUserActionKeyboard(user))
}

// processUserAction handles an action on the selected user
func (h *AdminHandler) processUserAction(ctx context.Context, c telebot.Context) error {
	state, err := h.stateService.GetState(c.Sender().ID)
	if err != nil {
		h.logger.Errorf("Failed to get user state: %v", err)
		return err
	}
	if state.Payload == nil {
		return h.handleStart(ctx, c)
	}
	userUUID := *state.Payload

	switch c.Text() {
	case commands.ShowSubscription:
		return h.showSubscription(ctx, c, userUUID)
	case commands.EnableUser:
		if user := h.panelService.EnableUser(ctx, userUUID); user != nil {
			return h.sendTextMessage(c, fmt.Sprintf("User <b>%s</b> enabled.", user.Username), h.createReturnKeyboard())
		}
		return h.sendTextMessage(c, "Failed to enable user.", h.createReturnKeyboard())
	case commands.DisableUser:
		if user := h.panelService.DisableUser(ctx, userUUID); user != nil {
			return h.sendTextMessage(c, fmt.Sprintf("User <b>%s</b> disabled.", user.Username), h.createReturnKeyboard())
		}
		return h.sendTextMessage(c, "Failed to disable user.", h.createReturnKeyboard())
	default:
		return h.handleStart(ctx, c)
	}
}

// showSubscription sends the user's subscription link and its QR code
func (h *AdminHandler) showSubscription(ctx context.Context, c telebot.Context, userUUID string) error {
	user := h.panelService.GetUser(ctx, userUUID)
	if user == nil || user.SubscriptionURL == "" {
		return h.sendTextMessage(c, "No subscription link available for this user.", h.createReturnKeyboard())
	}

	if err := h.sendQRCode(c, user.SubscriptionURL); err != nil {
		h.logger.Errorf("Failed to send subscription QR: %v", err)
	}
	return h.sendTextMessage(c, fmt.Sprintf("<code>%s</code>", user.SubscriptionURL), h.createReturnKeyboard())
}

// handleCreateUser starts the create-user wizard
func (h *AdminHandler) handleCreateUser(ctx context.Context, c telebot.Context) error {
	if err := h.stateService.WithConversationState(c.Sender().ID, models.AwaitCreateUsername); err != nil {
		h.logger.Errorf("Failed to set state: %v", err)
		return err
	}

	return h.sendTextMessage(c, "Enter the username for the new user:", h.createReturnKeyboard())
}

// processCreateUsername handles the username step of the wizard
func (h *AdminHandler) processCreateUsername(ctx context.Context, c telebot.Context) error {
	if c.Text() == commands.ReturnToMainMenu {
		return h.handleStart(ctx, c)
	}

	username := strings.TrimSpace(c.Text())
	if err := validation.ValidateUsername(username); err != nil {
		return h.sendTextMessage(c, err.Error(), h.createReturnKeyboard())
	}

	if err := h.stateService.WithDraft(c.Sender().ID, models.UserDraft{Username: username}); err != nil {
		h.logger.Errorf("Failed to set draft: %v", err)
		return err
	}
	if err := h.stateService.WithConversationState(c.Sender().ID, models.AwaitCreateTrafficLimit); err != nil {
		h.logger.Errorf("Failed to set state: %v", err)
		return err
	}

	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		telebot.Row{telebot.Btn{Text: commands.Unlimited}},
		telebot.Row{telebot.Btn{Text: commands.ReturnToMainMenu}},
	)
	return h.sendTextMessage(c, "Enter the traffic limit in GB (0 or Unlimited for no limit):", markup)
}

// processCreateTrafficLimit handles the traffic limit step of the wizard
func (h *AdminHandler) processCreateTrafficLimit(ctx context.Context, c telebot.Context) error {
	if c.Text() == commands.ReturnToMainMenu {
		return h.handleStart(ctx, c)
	}

	state, err := h.stateService.GetState(c.Sender().ID)
	if err != nil || state.Draft == nil {
		return h.handleStart(ctx, c)
	}

	limitGB := 0
	if c.Text() != commands.Unlimited {
		limitGB, err = validation.ParseTrafficLimitGB(c.Text())
		if err != nil {
			return h.sendTextMessage(c, err.Error(), h.createReturnKeyboard())
		}
	}

	draft := *state.Draft
	draft.TrafficLimitGB = limitGB
	if err := h.stateService.WithDraft(c.Sender().ID, draft); err != nil {
		h.logger.Errorf("Failed to set draft: %v", err)
		return err
	}
	if err := h.stateService.WithConversationState(c.Sender().ID, models.AwaitCreateExpiry); err != nil {
		h.logger.Errorf("Failed to set state: %v", err)
		return err
	}

	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		telebot.Row{telebot.Btn{Text: commands.NoExpiry}},
		telebot.Row{telebot.Btn{Text: commands.ReturnToMainMenu}},
	)
	return h.sendTextMessage(c, "Enter the expiry date (YYYY-MM-DD) or No Expiry:", markup)
}

// processCreateExpiry handles the expiry step of the wizard
func (h *AdminHandler) processCreateExpiry(ctx context.Context, c telebot.Context) error {
	if c.Text() == commands.ReturnToMainMenu {
		return h.handleStart(ctx, c)
	}

	state, err := h.stateService.GetState(c.Sender().ID)
	if err != nil || state.Draft == nil {
		return h.handleStart(ctx, c)
	}

	draft := *state.Draft
	if c.Text() != commands.NoExpiry {
		ts, err := validation.ParseExpiryDate(c.Text())
		if err != nil {
			return h.sendTextMessage(c, err.Error(), h.createReturnKeyboard())
		}
		draft.ExpireAt = ts.UTC().Format("2006-01-02T15:04:05Z")
	}

	if err := h.stateService.WithDraft(c.Sender().ID, draft); err != nil {
		h.logger.Errorf("Failed to set draft: %v", err)
		return err
	}
	if err := h.stateService.WithConversationState(c.Sender().ID, models.AwaitConfirmCreate); err != nil {
		h.logger.Errorf("Failed to set state: %v", err)
		return err
	}

	limit := "unlimited"
	if draft.TrafficLimitGB > 0 {
		limit = fmt.Sprintf("%d GB", draft.TrafficLimitGB)
	}
	expiry := "never"
	if draft.ExpireAt != "" {
		expiry = draft.ExpireAt
	}

	summary := fmt.Sprintf("Create user <b>%s</b>?\nTraffic limit: %s\nExpires: %s", draft.Username, limit, expiry)
	return h.sendTextMessage(c, summary, h.createConfirmKeyboard())
}

// processConfirmCreate handles the confirmation step of the wizard
func (h *AdminHandler) processConfirmCreate(ctx context.Context, c telebot.Context) error {
	if c.Text() != commands.Confirm {
		return h.handleStart(ctx, c)
	}

	state, err := h.stateService.GetState(c.Sender().ID)
	if err != nil || state.Draft == nil {
		return h.handleStart(ctx, c)
	}
	draft := *state.Draft

	user := h.panelService.CreateUser(ctx, remnaclient.CreateUserRequest{
		Username:          draft.Username,
		TrafficLimitBytes: int64(draft.TrafficLimitGB) * constants.BytesInGB,
		ExpireAt:          draft.ExpireAt,
	})

	if err := h.stateService.ClearState(c.Sender().ID); err != nil {
		h.logger.Errorf("Failed to clear user state: %v", err)
	}

	markup := h.createMainKeyboard(permissions.Admin)
	if user == nil {
		return h.sendTextMessage(c, "Failed to create user.", markup)
	}

	text := fmt.Sprintf("User <b>%s</b> created.", user.Username)
	if user.SubscriptionURL != "" {
		text += fmt.Sprintf("\nSubscription: <code>%s</code>", user.SubscriptionURL)
	}
	return h.sendTextMessage(c, text, markup)
}

// handleInbounds handles the Inbounds command
func (h *AdminHandler) handleInbounds(ctx context.Context, c telebot.Context) error {
	inbounds := h.panelService.GetInbounds(ctx)
	if len(inbounds) == 0 {
		return h.sendTextMessage(c, "No inbounds found or the panel API is unavailable.", h.createMainKeyboard(permissions.Admin))
	}

	labels := make([]string, 0, len(inbounds))
	for i := range inbounds {
		labels = append(labels, formatInbound(&inbounds[i]))
	}

	if err := h.stateService.WithConversationState(c.Sender().ID, models.AwaitSelectInbound); err != nil {
		h.logger.Errorf("Failed to set state: %v", err)
		return err
	}

	return h.sendTextMessage(c, "Select an inbound:", h.createListKeyboard(labels))
}

// processSelectInbound shows statistics for the selected inbound
func (h *AdminHandler) processSelectInbound(ctx context.Context, c telebot.Context) error {
	if c.Text() == commands.ReturnToMainMenu {
		return h.handleStart(ctx, c)
	}

	inbounds := h.panelService.GetInbounds(ctx)
	var selected *models.Inbound
	for i := range inbounds {
		if formatInbound(&inbounds[i]) == c.Text() {
			selected = &inbounds[i]
			break
		}
	}
	if selected == nil {
		return h.sendTextMessage(c, "Inbound not found. Select one from the list.", h.createReturnKeyboard())
	}

	stats := h.panelService.GetInboundUsersStats(ctx, selected.UUID)
	online := h.panelService.OnlineUsersCount(ctx)

	if err := h.stateService.ClearState(c.Sender().ID); err != nil {
		h.logger.Errorf("Failed to clear user state: %v", err)
	}

	text := fmt.Sprintf(
		"<b>%s</b>\nUsers: %d (%d enabled, %d disabled)\nOnline now: %d (panel-wide, not inbound-specific)",
		formatInbound(selected), stats.Total, stats.Enabled, stats.Disabled, online,
	)
	return h.sendTextMessage(c, text, h.createMainKeyboard(permissions.Admin))
}

// handleNodes handles the Nodes command
func (h *AdminHandler) handleNodes(ctx context.Context, c telebot.Context) error {
	nodes := h.panelService.GetNodes(ctx)
	if len(nodes) == 0 {
		return h.sendTextMessage(c, "No nodes found or the panel API is unavailable.", h.createMainKeyboard(permissions.Admin))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>Nodes (%d)</b>\n", len(nodes)))
	for _, node := range nodes {
		status := "disconnected"
		if node.IsConnected {
			status = "connected"
		}
		if node.IsDisabled {
			status = "disabled"
		}
		sb.WriteString(fmt.Sprintf("\n%s: %s", node.Name, status))
		if node.Address != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", node.Address))
		}
	}

	return h.sendTextMessage(c, sb.String(), h.createMainKeyboard(permissions.Admin))
}

// handleOnlineUsers handles the Online Users command
func (h *AdminHandler) handleOnlineUsers(ctx context.Context, c telebot.Context) error {
	online := h.panelService.OnlineUsersCount(ctx)
	text := fmt.Sprintf("Users online in the last 5 minutes: <b>%d</b>", online)
	return h.sendTextMessage(c, text, h.createMainKeyboard(permissions.Admin))
}

// createUserActionKeyboard builds the per-user action keyboard
func (h *AdminHandler) createUserActionKeyboard(user *models.User) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}

	toggle := commands.EnableUser
	if user.Active() {
		toggle = commands.DisableUser
	}

	markup.Reply(
		telebot.Row{
			telebot.Btn{Text: commands.ShowSubscription},
			telebot.Btn{Text: toggle},
		},
		telebot.Row{
			telebot.Btn{Text: commands.ReturnToMainMenu},
		},
	)
	return markup
}

// findUserByUsername fetches users and matches by exact username
func (h *AdminHandler) findUserByUsername(ctx context.Context, username string) *models.User {
	for _, user := range h.panelService.GetUsers(ctx) {
		if user.Username == username {
			found := user
			return &found
		}
	}
	return nil
}
