package permission

import "github.com/retreathub/gamehub/model"

// Action is the class of an inbound operation, used to look up the minimum
// tier it requires.
type Action int

const (
	ActionAddGame Action = iota
	ActionRemoveGame
	ActionCustomizeGame
	ActionListGames
	ActionClearGames
	ActionSetChannel
	ActionManageRoles
	ActionManageAdmins
	ActionSetOpenAccess
	ActionSetNotifyTarget
	ActionTriggerVerify
)

// MinTier is the lowest tier allowed to perform the action. Ownership-scoped
// refinements (own entry vs someone else's) are layered on top by
// AuthorizeOwned.
func (a Action) MinTier() model.Tier {
	switch a {
	case ActionListGames:
		return model.TierOpen
	case ActionAddGame, ActionRemoveGame, ActionCustomizeGame:
		return model.TierGameManager
	case ActionClearGames, ActionSetChannel, ActionTriggerVerify:
		return model.TierBotAdmin
	case ActionManageRoles, ActionSetOpenAccess, ActionSetNotifyTarget:
		return model.TierFullAdmin
	case ActionManageAdmins:
		return model.TierOwner
	}
	return model.TierOwner
}

func (a Action) String() string {
	switch a {
	case ActionAddGame:
		return "add game"
	case ActionRemoveGame:
		return "remove game"
	case ActionCustomizeGame:
		return "customize game"
	case ActionListGames:
		return "list games"
	case ActionClearGames:
		return "clear games"
	case ActionSetChannel:
		return "set channel restriction"
	case ActionManageRoles:
		return "manage role mapping"
	case ActionManageAdmins:
		return "manage admins"
	case ActionSetOpenAccess:
		return "toggle open access"
	case ActionSetNotifyTarget:
		return "set notify target"
	case ActionTriggerVerify:
		return "trigger verification"
	}
	return "unknown action"
}
