package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"remna-tg-admin/internal/commands"
	"remna-tg-admin/internal/config"
	"remna-tg-admin/internal/models"
	"remna-tg-admin/internal/permissions"
	"remna-tg-admin/internal/services"
)

// OperatorHandler handles operator commands. Operators get read-only
// access: user and inbound listings without mutations.
type OperatorHandler struct {
	BaseHandler
	commandHandlers map[string]func(context.Context, telebot.Context) error
}

// NewOperatorHandler creates a new operator handler
func NewOperatorHandler(
	panelService *services.PanelService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	config *config.Config,
	logger *logrus.Logger,
) *OperatorHandler {
	handler := &OperatorHandler{
		BaseHandler: NewBaseHandler(panelService, stateService, qrService, config, logger),
	}

	handler.initializeCommands()
	return handler
}

// CanHandle checks if the handler can handle the given access type
func (h *OperatorHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.Operator
}

// Handle handles a message from Telegram
func (h *OperatorHandler) Handle(ctx context.Context, c telebot.Context) error {
	userState, err := h.stateService.GetState(c.Sender().ID)
	if err != nil {
		h.logger.Errorf("Failed to get user state: %v", err)
		return err
	}

	switch userState.State {
	case models.Default:
		return h.handleDefaultState(ctx, c)
	case models.AwaitSelectUser:
		return h.processSelectUser(ctx, c)
	case models.AwaitSelectInbound:
		return h.processSelectInbound(ctx, c)
	default:
		return h.handleStart(ctx, c)
	}
}

func (h *OperatorHandler) initializeCommands() {
	h.commandHandlers = map[string]func(context.Context, telebot.Context) error{
		commands.Start:            h.handleStart,
		commands.Users:            h.handleUsers,
		commands.Inbounds:         h.handleInbounds,
		commands.OnlineUsers:      h.handleOnlineUsers,
		commands.ReturnToMainMenu: h.handleStart,
		commands.Cancel:           h.handleStart,
	}
}

func (h *OperatorHandler) handleDefaultState(ctx context.Context, c telebot.Context) error {
	if handler, ok := h.commandHandlers[c.Text()]; ok {
		return handler(ctx, c)
	}

	return h.handleStart(ctx, c)
}

func (h *OperatorHandler) handleStart(ctx context.Context, c telebot.Context) error {
	if err := h.stateService.ClearState(c.Sender().ID); err != nil {
		h.logger.Errorf("Failed to clear user state: %v", err)
		return err
	}

	markup := h.createMainKeyboard(permissions.Operator)
	return h.sendTextMessage(c, "Welcome, operator. Read-only panel access.", markup)
}

func (h *OperatorHandler) handleUsers(ctx context.Context, c telebot.Context) error {
	users := h.panelService.GetUsers(ctx)
	if len(users) == 0 {
		return h.sendTextMessage(c, "No users found or the panel API is unavailable.", h.createMainKeyboard(permissions.Operator))
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

func (h *OperatorHandler) processSelectUser(ctx context.Context, c telebot.Context) error {
	if c.Text() == commands.ReturnToMainMenu {
		return h.handleStart(ctx, c)
	}

	var found *models.User
	for _, user := range h.panelService.GetUsers(ctx) {
		if user.Username == c.Text() {
			match := user
			found = &match
			break
		}
	}
	if found == nil {
		return h.sendTextMessage(c, "User not found. Select a user from the list.", h.createReturnKeyboard())
	}

	if err := h.stateService.ClearState(c.Sender().ID); err != nil {
		h.logger.Errorf("Failed to clear user state: %v", err)
	}

	return h.sendTextMessage(c, h.formatUser(found), h.createMainKeyboard(permissions.Operator))
}

func (h *OperatorHandler) handleInbounds(ctx context.Context, c telebot.Context) error {
	inbounds := h.panelService.GetInbounds(ctx)
	if len(inbounds) == 0 {
		return h.sendTextMessage(c, "No inbounds found or the panel API is unavailable.", h.createMainKeyboard(permissions.Operator))
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

func (h *OperatorHandler) processSelectInbound(ctx context.Context, c telebot.Context) error {
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

	if err := h.stateService.ClearState(c.Sender().ID); err != nil {
		h.logger.Errorf("Failed to clear user state: %v", err)
	}

	users := h.panelService.GetInboundUsers(ctx, selected.UUID)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"<b>%s</b>\nUsers: %d (%d enabled, %d disabled)",
		formatInbound(selected), stats.Total, stats.Enabled, stats.Disabled,
	))
	for _, user := range users {
		sb.WriteString("\n• " + user.Username)
	}

	return h.sendTextMessage(c, sb.String(), h.createMainKeyboard(permissions.Operator))
}

func (h *OperatorHandler) handleOnlineUsers(ctx context.Context, c telebot.Context) error {
	online := h.panelService.OnlineUsersCount(ctx)
	text := fmt.Sprintf("Users online in the last 5 minutes: <b>%d</b>", online)
	return h.sendTextMessage(c, text, h.createMainKeyboard(permissions.Operator))
}
