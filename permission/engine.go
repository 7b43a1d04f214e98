// Package permission decides whether an actor may perform an action given
// the current access configuration. Evaluation is pure: no side effects, no
// I/O, identical inputs always yield the same decision.
package permission

import (
	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/utils"
)

// ActorTier computes the highest tier the actor satisfies under the given
// config. Explicit admin-list membership maps to FullAdmin. Role lookups
// take the maximum matching tier since tiers are cumulative. AllowEveryone
// floors every actor at GameManager.
func ActorTier(actor model.Actor, cfg model.AccessConfig) model.Tier {
	if actor.IsOwner {
		return model.TierOwner
	}
	if utils.ContainsString(cfg.BotAdmins, actor.Id) {
		return model.TierFullAdmin
	}

	switch {
	case utils.ContainsAnyString(actor.Roles, cfg.FullAdminRoles):
		return model.TierFullAdmin
	case utils.ContainsAnyString(actor.Roles, cfg.BotAdminRoles):
		return model.TierBotAdmin
	case utils.ContainsAnyString(actor.Roles, cfg.GameManagerRoles):
		return model.TierGameManager
	}

	if cfg.AllowEveryone {
		return model.TierGameManager
	}
	return model.TierOpen
}

// Authorize allows or denies the action for the actor. The channel
// restriction is evaluated first and independently of tiers; listing is the
// designated always-available read action and is exempt.
func Authorize(actor model.Actor, action Action, cfg model.AccessConfig) error {
	if cfg.RestrictedChannel != "" && action != ActionListGames &&
		actor.ChannelId != cfg.RestrictedChannel {
		return &WrongChannelError{RequiredChannel: cfg.RestrictedChannel}
	}

	tier := ActorTier(actor, cfg)
	if !tier.Satisfies(action.MinTier()) {
		return &InsufficientTierError{Action: action, Required: action.MinTier(), Actual: tier}
	}
	return nil
}

// AuthorizeOwned is Authorize plus the ownership check for entry-scoped
// actions. Ownership is waived at BotAdmin and above, except customize which
// only the original submitter may ever perform.
func AuthorizeOwned(actor model.Actor, action Action, ownerId string, ownerName string, cfg model.AccessConfig) error {
	if err := Authorize(actor, action, cfg); err != nil {
		return err
	}
	if actor.Id == ownerId {
		return nil
	}
	if action == ActionCustomizeGame {
		return &NotOwnerError{OwnerId: ownerId, OwnerName: ownerName}
	}
	if ActorTier(actor, cfg).Satisfies(model.TierBotAdmin) {
		return nil
	}
	return &NotOwnerError{OwnerId: ownerId, OwnerName: ownerName}
}
