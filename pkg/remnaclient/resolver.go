package remnaclient

import (
	"context"
	"strings"

	"remna-tg-admin/internal/constants"
	"remna-tg-admin/internal/models"
)

// InboundUsersStats summarizes the users resolved for an inbound.
type InboundUsersStats struct {
	Enabled  int
	Disabled int
	Total    int
}

// GetInboundUsers returns the users whose active subscription is served by
// the given inbound. The backend has no direct endpoint for this, so the
// result is assembled by cross-referencing users, subscriptions, config
// profiles and inbounds.
//
// Strategies run in a fixed order, each only when the previous yielded
// nothing: subscription scan (direct inbound refs, then profile
// membership), legacy user inbound fields, tag heuristic, profile users
// endpoint. The ordering mirrors the observed behavior of the backend
// across versions and must not be rearranged.
func (c *Client) GetInboundUsers(ctx context.Context, inboundUUID string) []models.User {
	c.logger.Infof("Getting users for inbound %s", inboundUUID)

	// Resolve the target record so references without UUIDs can be matched
	// by tag, port and type. Without it matching degrades to UUID equality.
	var target *models.Inbound
	for _, inbound := range c.GetInbounds(ctx) {
		if inbound.UUID == inboundUUID {
			found := inbound
			target = &found
			break
		}
	}
	if target == nil {
		c.logger.Warnf("Could not resolve target details for inbound %s", inboundUUID)
	}

	profileSet := c.profilesWithInbound(ctx, inboundUUID)

	users := c.GetUsers(ctx)
	if len(users) == 0 {
		c.logger.Warn("No users found in response")
		return nil
	}
	c.logger.Infof("Found %d total users", len(users))

	seen := make(map[string]bool)
	var matched []models.User
	add := func(user models.User) {
		if user.UUID != "" {
			if seen[user.UUID] {
				return
			}
			seen[user.UUID] = true
		}
		matched = append(matched, user)
	}

	activeUsers := 0
	for _, user := range users {
		if !user.Active() {
			continue
		}
		activeUsers++

		// Direct subscription-bound inbound references win; the user's
		// remaining subscriptions are not inspected after a hit.
		direct := false
		for _, sub := range user.SubscriptionItems() {
			for i := range sub.Inbounds {
				if sub.Inbounds[i].Matches(inboundUUID, target) {
					c.logger.Infof("Found user %s via subscription inbounds for inbound %s", user.Username, inboundUUID)
					add(user)
					direct = true
					break
				}
			}
			if direct {
				break
			}
		}
		if direct {
			continue
		}

		profileUUID := resolveProfileUUID(&user)
		if profileUUID == "" {
			continue
		}

		// Fast path via the precomputed profile membership index.
		if profileSet[profileUUID] {
			c.logger.Infof("Found user %s via profile map for inbound %s", user.Username, inboundUUID)
			add(user)
			continue
		}

		// On-demand verification when the index was empty or inconclusive.
		for _, inbound := range c.GetProfileInbounds(ctx, profileUUID) {
			ref := inbound.Ref()
			if ref.Matches(inboundUUID, target) {
				c.logger.Infof("Found user %s using inbound %s", user.Username, inboundUUID)
				add(user)
				break
			}
		}
	}

	c.logger.Infof("User stats: %d active, %d matched for inbound %s", activeUsers, len(matched), inboundUUID)

	// Legacy direct fields on the user record.
	if len(matched) == 0 {
		c.logger.Info("Trying legacy user inbound fields")
		for _, user := range users {
			if !user.Active() {
				continue
			}
			if anyRefMatches(user.Inbounds, inboundUUID, target) || anyRefMatches(user.ActiveInbounds, inboundUUID, target) {
				add(user)
			}
		}
	}

	// Heuristic: match the user's own tag against the inbound tag.
	if len(matched) == 0 && target != nil && target.Tag != "" {
		targetTag := strings.ToLower(strings.TrimSpace(target.Tag))
		for _, user := range users {
			if !user.Active() {
				continue
			}
			userTag := strings.ToLower(strings.TrimSpace(user.Tag))
			if userTag != "" && userTag == targetTag {
				add(user)
			}
		}
		c.logger.Infof("Tag heuristic matched %d users for inbound %s", len(matched), inboundUUID)
	}

	// Final fallback: union the matching profiles' own user lists.
	if len(matched) == 0 && len(profileSet) > 0 {
		c.logger.Info("Trying profile users endpoint as final fallback")
		for profileUUID := range profileSet {
			for _, user := range c.GetProfileUsers(ctx, profileUUID) {
				add(user)
			}
		}
		c.logger.Infof("Profile users fallback added %d users", len(matched))
	}

	c.logger.Infof("Final result: %d users found for inbound %s", len(matched), inboundUUID)
	return matched
}

// CountInboundUsers returns the number of users resolved for an inbound.
func (c *Client) CountInboundUsers(ctx context.Context, inboundUUID string) int {
	return len(c.GetInboundUsers(ctx, inboundUUID))
}

// GetInboundUsersStats returns active/inactive counts among the users
// resolved for an inbound, zero-filled when nothing resolves.
func (c *Client) GetInboundUsersStats(ctx context.Context, inboundUUID string) InboundUsersStats {
	users := c.GetInboundUsers(ctx, inboundUUID)

	var stats InboundUsersStats
	for _, user := range users {
		if user.Active() {
			stats.Enabled++
		} else {
			stats.Disabled++
		}
	}
	stats.Total = len(users)
	return stats
}

// OnlineUsersCount counts active users seen online within the last five
// minutes. The backend exposes no inbound-scoped presence, so this is a
// global proxy, not an inbound-specific figure.
func (c *Client) OnlineUsersCount(ctx context.Context) int {
	users := c.GetUsers(ctx)
	if len(users) == 0 {
		return 0
	}

	now := c.now().UTC()
	online := 0
	for _, user := range users {
		if !user.Active() {
			continue
		}
		if ts, ok := models.ParseTimestamp(user.OnlineAt); ok && models.IsRecent(ts, constants.OnlineWindow, now) {
			online++
		}
	}

	c.logger.Infof("Online users count: %d (checked %d users)", online, len(users))
	return online
}

// AddInboundToUsers is not supported by the deployed API version; users no
// longer manage inbounds directly. Kept as a compatibility shim.
func (c *Client) AddInboundToUsers(ctx context.Context, inboundUUID string) *Payload {
	return nil
}

// RemoveInboundFromUsers is not supported by the deployed API version.
func (c *Client) RemoveInboundFromUsers(ctx context.Context, inboundUUID string) *Payload {
	return nil
}

// AddInboundToNodes is not supported by the deployed API version; nodes use
// config profile active inbounds.
func (c *Client) AddInboundToNodes(ctx context.Context, inboundUUID string) *Payload {
	return nil
}

// RemoveInboundFromNodes is not supported by the deployed API version.
func (c *Client) RemoveInboundFromNodes(ctx context.Context, inboundUUID string) *Payload {
	return nil
}

// profilesWithInbound builds the set of config profile UUIDs that activate
// the given inbound. Failures fetching one profile's inbounds leave it out
// of the index; a partial index is acceptable.
func (c *Client) profilesWithInbound(ctx context.Context, inboundUUID string) map[string]bool {
	set := make(map[string]bool)
	for _, profile := range c.GetConfigProfiles(ctx) {
		key := profile.Key()
		if key == "" {
			continue
		}

		inbounds := c.GetProfileInbounds(ctx, key)
		if inbounds == nil {
			c.logger.Warnf("Failed to get inbounds for profile %s", key)
			continue
		}

		for _, inbound := range inbounds {
			if inbound.UUID == inboundUUID {
				set[key] = true
				break
			}
		}
	}
	return set
}

// resolveProfileUUID finds the user's config profile, preferring
// subscription-level bindings over the user-level fallback fields.
func resolveProfileUUID(user *models.User) string {
	for _, sub := range user.SubscriptionItems() {
		if id := sub.ProfileUUID(); id != "" {
			return id
		}
	}
	return user.ProfileUUID()
}

func anyRefMatches(refs []models.InboundRef, inboundUUID string, target *models.Inbound) bool {
	for i := range refs {
		if refs[i].Matches(inboundUUID, target) {
			return true
		}
	}
	return false
}
