package model

// AccessConfig is the process-wide, persisted authorization configuration.
// The server owner identity comes from the environment, not from this
// config, and always satisfies every tier no matter what this holds.
type AccessConfig struct {
	// When true, every actor gets GameManager-level access.
	AllowEveryone bool `json:"allow_everyone"`

	// Role mappings per tier. Higher tiers implicitly satisfy lower ones.
	GameManagerRoles []string `json:"game_manager_roles"`
	BotAdminRoles    []string `json:"bot_admin_roles"`
	FullAdminRoles   []string `json:"full_admin_roles"`

	// Explicit identity allowlist, independent of roles. Members satisfy
	// FullAdmin.
	BotAdmins []string `json:"bot_admins"`

	// When set, all tier-gated actions are rejected outside this channel.
	// Listing stays available everywhere.
	RestrictedChannel string `json:"restricted_channel"`

	// Identity that receives out-of-band notifications (forwarded links,
	// removal notices).
	NotifyTarget string `json:"notify_target"`
}

// DefaultAccessConfig is the first-run configuration: nobody but the owner
// can do anything until roles or admins are configured.
func DefaultAccessConfig() AccessConfig {
	return AccessConfig{
		AllowEveryone:    false,
		GameManagerRoles: []string{},
		BotAdminRoles:    []string{},
		FullAdminRoles:   []string{},
		BotAdmins:        []string{},
	}
}

// RolesForTier returns the role list configured for the given tier, nil for
// tiers that have no role mapping.
func (c *AccessConfig) RolesForTier(t Tier) []string {
	switch t {
	case TierGameManager:
		return c.GameManagerRoles
	case TierBotAdmin:
		return c.BotAdminRoles
	case TierFullAdmin:
		return c.FullAdminRoles
	}
	return nil
}
