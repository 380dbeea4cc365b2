package handlers

import (
	"context"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"remna-tg-admin/internal/commands"
	"remna-tg-admin/internal/config"
	"remna-tg-admin/internal/permissions"
	"remna-tg-admin/internal/services"
)

// DemoHandler handles messages from users without any access grant
type DemoHandler struct {
	BaseHandler
}

// NewDemoHandler creates a new demo handler
func NewDemoHandler(
	panelService *services.PanelService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	config *config.Config,
	logger *logrus.Logger,
) *DemoHandler {
	return &DemoHandler{
		BaseHandler: NewBaseHandler(panelService, stateService, qrService, config, logger),
	}
}

// CanHandle checks if the handler can handle the given access type
func (h *DemoHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.Demo
}

// Handle handles a message from Telegram
func (h *DemoHandler) Handle(ctx context.Context, c telebot.Context) error {
	switch c.Text() {
	case commands.About:
		return h.sendTextMessage(c, aboutText, h.createMainKeyboard(permissions.Demo))
	case commands.Help:
		return h.sendTextMessage(c, helpText, h.createMainKeyboard(permissions.Demo))
	default:
		return h.sendTextMessage(c, "You don't have access to this bot. Contact the administrator.", h.createMainKeyboard(permissions.Demo))
	}
}

const aboutText = "Remnawave Admin Bot: a Telegram front-end for managing a Remnawave panel."

const helpText = "Access to this bot is granted per Telegram user ID. " +
	"Ask your administrator to add your ID to the allowed list."
