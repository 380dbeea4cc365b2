package remnaclient

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"remna-tg-admin/internal/models"
)

// CreateUserRequest contains the fields for creating a panel user.
type CreateUserRequest struct {
	Username             string `json:"username"`
	TrafficLimitBytes    int64  `json:"trafficLimitBytes"`
	TrafficLimitStrategy string `json:"trafficLimitStrategy"`
	ExpireAt             string `json:"expireAt,omitempty"`
	Description          string `json:"description,omitempty"`
	Tag                  string `json:"tag,omitempty"`
	ShortUUID            string `json:"shortUuid,omitempty"`
}

// GetUsers returns all panel users.
func (c *Client) GetUsers(ctx context.Context) []models.User {
	payload := c.Get(ctx, "users", nil)
	return decodeList[models.User](payload, "users", c.logger)
}

// GetUser returns a single user by UUID, or nil when absent.
func (c *Client) GetUser(ctx context.Context, userUUID string) *models.User {
	payload := c.Get(ctx, "users/"+userUUID, nil)
	return c.decodeUser(payload)
}

// CreateUser creates a panel user. Defaults: unlimited traffic, NO_RESET
// strategy and a generated short UUID.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) *models.User {
	if req.TrafficLimitStrategy == "" {
		req.TrafficLimitStrategy = "NO_RESET"
	}
	if req.ShortUUID == "" {
		req.ShortUUID = strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	}

	payload := c.Post(ctx, "users", req)
	return c.decodeUser(payload)
}

// UpdateUser patches the given fields on a user.
func (c *Client) UpdateUser(ctx context.Context, userUUID string, fields map[string]any) *models.User {
	payload := c.Patch(ctx, "users/"+userUUID, fields)
	return c.decodeUser(payload)
}

// EnableUser enables a user.
func (c *Client) EnableUser(ctx context.Context, userUUID string) *models.User {
	payload := c.Post(ctx, "users/"+userUUID+"/actions/enable", nil)
	return c.decodeUser(payload)
}

// DisableUser disables a user.
func (c *Client) DisableUser(ctx context.Context, userUUID string) *models.User {
	payload := c.Post(ctx, "users/"+userUUID+"/actions/disable", nil)
	return c.decodeUser(payload)
}

func (c *Client) decodeUser(payload *Payload) *models.User {
	if payload == nil {
		return nil
	}

	var user models.User
	if err := payload.Decode(&user); err != nil {
		c.logger.Errorf("Failed to decode user payload: %v", err)
		return nil
	}
	return &user
}
