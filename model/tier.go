package model

// Tier is the permission level of an actor or the minimum level required by
// an action. Tiers are cumulative: holding a higher tier satisfies every
// lower tier check.
type Tier int

const (
	TierOpen Tier = iota
	TierGameManager
	TierBotAdmin
	TierFullAdmin
	TierOwner
)

// Satisfies reports whether an actor at tier t clears the required tier.
func (t Tier) Satisfies(required Tier) bool {
	return t >= required
}

func (t Tier) String() string {
	switch t {
	case TierOpen:
		return "Open"
	case TierGameManager:
		return "GameManager"
	case TierBotAdmin:
		return "BotAdmin"
	case TierFullAdmin:
		return "FullAdmin"
	case TierOwner:
		return "Owner"
	}
	return "Unknown"
}

// ParseTier maps the role-management command argument to a configurable tier.
// Owner and Open are not configurable through role mappings and are rejected.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "manager", "GameManager":
		return TierGameManager, true
	case "admin", "BotAdmin":
		return TierBotAdmin, true
	case "fulladmin", "FullAdmin":
		return TierFullAdmin, true
	}
	return TierOpen, false
}
