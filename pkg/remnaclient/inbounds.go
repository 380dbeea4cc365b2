package remnaclient

import (
	"context"

	"remna-tg-admin/internal/models"
)

// GetInbounds returns all inbounds across all config profiles.
func (c *Client) GetInbounds(ctx context.Context) []models.Inbound {
	payload := c.Get(ctx, "config-profiles/inbounds", nil)
	return decodeList[models.Inbound](payload, "inbounds", c.logger)
}

// GetNodes returns all panel nodes.
func (c *Client) GetNodes(ctx context.Context) []models.Node {
	payload := c.Get(ctx, "nodes", nil)
	return decodeList[models.Node](payload, "nodes", c.logger)
}
