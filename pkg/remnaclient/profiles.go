package remnaclient

import (
	"context"

	"remna-tg-admin/internal/models"
)

// GetConfigProfiles returns all config profiles.
func (c *Client) GetConfigProfiles(ctx context.Context) []models.ConfigProfile {
	payload := c.Get(ctx, "config-profiles", nil)
	return decodeList[models.ConfigProfile](payload, "configProfiles", c.logger)
}

// GetProfileInbounds returns the inbounds a config profile activates.
func (c *Client) GetProfileInbounds(ctx context.Context, profileUUID string) []models.Inbound {
	payload := c.Get(ctx, "config-profiles/"+profileUUID+"/inbounds", nil)
	return decodeList[models.Inbound](payload, "inbounds", c.logger)
}

// GetProfileUsers returns the users attached to a config profile.
func (c *Client) GetProfileUsers(ctx context.Context, profileUUID string) []models.User {
	payload := c.Get(ctx, "config-profiles/"+profileUUID+"/users", nil)
	return decodeList[models.User](payload, "users", c.logger)
}
