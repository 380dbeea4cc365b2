package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"remna-tg-admin/internal/config"
	"remna-tg-admin/internal/health"
	"remna-tg-admin/internal/permissions"
	"remna-tg-admin/internal/services"
	"remna-tg-admin/pkg/telegrambot"
)

func main() {
	logger := setupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: ", err)
	}

	stateService := services.NewUserStateService(logger)
	panelService := services.NewPanelService(cfg, logger)
	qrService := services.NewQRService(logger)

	permController := permissions.NewController(cfg.Telegram.AdminIDs, cfg.Telegram.OperatorIDs, logger)

	bot, err := telegrambot.NewBot(cfg, stateService, panelService, qrService, permController, logger)
	if err != nil {
		logger.Fatal("Failed to create bot: ", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	if cfg.HealthAddr != "" {
		healthServer := health.NewServer(cfg.HealthAddr, panelService, logger)
		go func() {
			if err := healthServer.Start(ctx); err != nil {
				logger.Errorf("Health server failed: %v", err)
			}
		}()
	}

	logger.Info("Starting Remnawave Telegram bot")
	if err := bot.Start(ctx); err != nil {
		logger.Fatal("Bot failed: ", err)
	}
}

// setupLogger sets up the logger
func setupLogger() *logrus.Logger {
	logger := logrus.New()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return logger
}
