package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"remna-tg-admin/internal/config"
	"remna-tg-admin/internal/models"
	"remna-tg-admin/pkg/remnaclient"
)

// PanelService manages the Remnawave API client for the bot handlers.
type PanelService struct {
	client *remnaclient.Client
	config *config.Config
	logger *logrus.Logger
}

// NewPanelService creates a new panel service
func NewPanelService(cfg *config.Config, logger *logrus.Logger) *PanelService {
	return &PanelService{
		client: remnaclient.New(cfg.API, logger),
		config: cfg,
		logger: logger,
	}
}

// HealthCheck reports whether the panel API is reachable.
func (s *PanelService) HealthCheck(ctx context.Context) bool {
	return s.client.TestConnection(ctx)
}

// GetUsers gets all users from the panel
func (s *PanelService) GetUsers(ctx context.Context) []models.User {
	return s.client.GetUsers(ctx)
}

// GetUser gets a single user from the panel
func (s *PanelService) GetUser(ctx context.Context, userUUID string) *models.User {
	return s.client.GetUser(ctx, userUUID)
}

// CreateUser creates a user on the panel
func (s *PanelService) CreateUser(ctx context.Context, req remnaclient.CreateUserRequest) *models.User {
	return s.client.CreateUser(ctx, req)
}

// EnableUser enables a user on the panel
func (s *PanelService) EnableUser(ctx context.Context, userUUID string) *models.User {
	return s.client.EnableUser(ctx, userUUID)
}

// DisableUser disables a user on the panel
func (s *PanelService) DisableUser(ctx context.Context, userUUID string) *models.User {
	return s.client.DisableUser(ctx, userUUID)
}

// GetInbounds gets all inbounds across config profiles
func (s *PanelService) GetInbounds(ctx context.Context) []models.Inbound {
	return s.client.GetInbounds(ctx)
}

// GetInboundUsers resolves the users served by an inbound
func (s *PanelService) GetInboundUsers(ctx context.Context, inboundUUID string) []models.User {
	return s.client.GetInboundUsers(ctx, inboundUUID)
}

// GetInboundUsersStats resolves per-inbound user statistics
func (s *PanelService) GetInboundUsersStats(ctx context.Context, inboundUUID string) remnaclient.InboundUsersStats {
	return s.client.GetInboundUsersStats(ctx, inboundUUID)
}

// OnlineUsersCount counts recently seen active users
func (s *PanelService) OnlineUsersCount(ctx context.Context) int {
	return s.client.OnlineUsersCount(ctx)
}

// GetNodes gets all nodes from the panel
func (s *PanelService) GetNodes(ctx context.Context) []models.Node {
	return s.client.GetNodes(ctx)
}
