package handlers

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"remna-tg-admin/internal/commands"
	"remna-tg-admin/internal/config"
	"remna-tg-admin/internal/constants"
	"remna-tg-admin/internal/models"
	"remna-tg-admin/internal/permissions"
	"remna-tg-admin/internal/services"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	panelService *services.PanelService
	stateService *services.UserStateService
	qrService    *services.QRService
	config       *config.Config
	logger       *logrus.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(
	panelService *services.PanelService,
	stateService *services.UserStateService,
	qrService *services.QRService,
	config *config.Config,
	logger *logrus.Logger,
) BaseHandler {
	return BaseHandler{
		panelService: panelService,
		stateService: stateService,
		qrService:    qrService,
		config:       config,
		logger:       logger,
	}
}

// CanHandle checks if the handler can handle the given access type
func (h *BaseHandler) CanHandle(accessType permissions.AccessType) bool {
	return false
}

// sendTextMessage sends a text message with optional markup
func (h *BaseHandler) sendTextMessage(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := &telebot.SendOptions{
		ParseMode: telebot.ModeHTML,
	}

	if markup != nil {
		opts.ReplyMarkup = markup
	}

	_, err := c.Bot().Send(c.Recipient(), text, opts)
	if err != nil {
		h.logger.Errorf("Failed to send message: %v", err)
	}
	return err
}

// sendQRCode sends a QR code for the given URL
func (h *BaseHandler) sendQRCode(c telebot.Context, url string) error {
	qrBytes, err := h.qrService.GenerateQR(url)
	if err != nil {
		h.logger.Errorf("Failed to generate QR code: %v", err)
		return err
	}

	reader := bytes.NewReader(qrBytes)
	photo := &telebot.Photo{File: telebot.FromReader(reader)}

	_, err = c.Bot().Send(c.Recipient(), photo)
	if err != nil {
		h.logger.Errorf("Failed to send QR code: %v", err)
	}
	return err
}

// createMainKeyboard creates the main keyboard for the given access type
func (h *BaseHandler) createMainKeyboard(accessType permissions.AccessType) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}

	var rows []telebot.Row

	switch accessType {
	case permissions.Admin:
		rows = []telebot.Row{
			{
				telebot.Btn{Text: commands.Users},
				telebot.Btn{Text: commands.CreateUser},
			},
			{
				telebot.Btn{Text: commands.Inbounds},
				telebot.Btn{Text: commands.Nodes},
			},
			{
				telebot.Btn{Text: commands.OnlineUsers},
			},
		}
	case permissions.Operator:
		rows = []telebot.Row{
			{
				telebot.Btn{Text: commands.Users},
				telebot.Btn{Text: commands.Inbounds},
			},
			{
				telebot.Btn{Text: commands.OnlineUsers},
			},
		}
	case permissions.Demo:
		rows = []telebot.Row{
			{
				telebot.Btn{Text: commands.About},
				telebot.Btn{Text: commands.Help},
			},
		}
	}

	markup.Reply(rows...)
	return markup
}

// createReturnKeyboard creates a keyboard with a return button
func (h *BaseHandler) createReturnKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}

	markup.Reply(
		telebot.Row{
			telebot.Btn{Text: commands.ReturnToMainMenu},
		},
	)

	return markup
}

// createConfirmKeyboard creates a keyboard with confirm/cancel buttons
func (h *BaseHandler) createConfirmKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}

	markup.Reply(
		telebot.Row{
			telebot.Btn{Text: commands.Confirm},
			telebot.Btn{Text: commands.Cancel},
		},
	)

	return markup
}

// createListKeyboard builds a one-item-per-row keyboard with a return button
func (h *BaseHandler) createListKeyboard(items []string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}

	rows := make([]telebot.Row, 0, len(items)+1)
	for _, item := range items {
		rows = append(rows, telebot.Row{telebot.Btn{Text: item}})
	}
	rows = append(rows, telebot.Row{telebot.Btn{Text: commands.ReturnToMainMenu}})

	markup.Reply(rows...)
	return markup
}

// formatUser renders a user detail view
func (h *BaseHandler) formatUser(user *models.User) string {
	status := "disabled"
	if user.Active() {
		status = "active"
	}

	text := fmt.Sprintf("<b>%s</b>\nStatus: %s\nTraffic: %s / %s",
		user.Username,
		status,
		formatTraffic(user.UsedTrafficBytes),
		formatTrafficLimit(user.TrafficLimitBytes),
	)

	if user.ExpireAt != "" {
		if ts, ok := models.ParseTimestamp(user.ExpireAt); ok {
			text += fmt.Sprintf("\nExpires: %s", ts.Format(constants.DateFormat))
		}
	}
	if user.Description != "" {
		text += fmt.Sprintf("\nDescription: %s", user.Description)
	}

	return text
}

// formatInbound renders an inbound list entry
func formatInbound(inbound *models.Inbound) string {
	label := inbound.Tag
	if label == "" {
		label = inbound.UUID
	}
	if port, ok := inbound.EffectivePort(); ok {
		return fmt.Sprintf("%s (%s:%d)", label, inbound.Type, port)
	}
	return fmt.Sprintf("%s (%s)", label, inbound.Type)
}

// formatTraffic renders a byte count in gigabytes
func formatTraffic(bytes int64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/float64(constants.BytesInGB))
}

// formatTrafficLimit renders a traffic limit; zero means unlimited
func formatTrafficLimit(bytes int64) string {
	if bytes <= 0 {
		return "unlimited"
	}
	return formatTraffic(bytes)
}
