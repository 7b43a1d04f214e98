// Package hub maps inbound user actions onto the permission engine and the
// stores, producing result payloads for the transport adapters. The chat and
// HTTP layers are thin shells over this dispatcher.
package hub

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/retreathub/gamehub/lookup"
	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/notify"
	"github.com/retreathub/gamehub/permission"
	"github.com/retreathub/gamehub/store"
	Logger "github.com/retreathub/gamehub/utils/log"
	"github.com/retreathub/gamehub/verifier"
)

const (
	placeholderName    = "Unknown Game"
	placeholderCreator = "Unknown"
)

type Dispatcher struct {
	entries  *store.EntryStore
	config   *store.ConfigStore
	lookup   lookup.GameLookup
	sched    *verifier.Scheduler
	eventBus *gochannel.GoChannel
}

func NewDispatcher(entries *store.EntryStore, config *store.ConfigStore, lk lookup.GameLookup, sched *verifier.Scheduler, e *gochannel.GoChannel) *Dispatcher {
	return &Dispatcher{
		entries:  entries,
		config:   config,
		lookup:   lk,
		sched:    sched,
		eventBus: e,
	}
}

type AddResult struct {
	Entry model.HubEntry

	// True when the lookup service was unavailable and the entry was created
	// with placeholder metadata instead of blocking the add.
	UsedPlaceholder bool
}

// AddGame registers a new game in the hub. The reference may be a share link
// or a bare id. An explicit does-not-exist answer from the lookup rejects
// the add; an inconclusive one degrades to placeholder metadata.
func (d *Dispatcher) AddGame(ctx context.Context, actor model.Actor, gameRef string, genreStr string) (*AddResult, error) {
	cfg := d.config.Get()
	if err := permission.Authorize(actor, permission.ActionAddGame, cfg); err != nil {
		return nil, err
	}

	id, ok := lookup.ExtractGameId(gameRef)
	if !ok {
		return nil, ErrInvalidGameRef
	}
	genre, ok := model.ParseGenre(genreStr)
	if !ok {
		return nil, ErrUnknownGenre
	}
	if _, exists := d.entries.Get(id); exists {
		return nil, store.ErrDuplicateId
	}

	res := d.lookup.Lookup(ctx, id)
	entry := model.HubEntry{
		Id:          id,
		Genre:       genre,
		AddedById:   actor.Id,
		AddedByName: actor.DisplayName,
		AddedAtMs:   time.Now().UnixMilli(),
	}
	usedPlaceholder := false
	switch res.Status {
	case lookup.StatusFound:
		entry.CanonicalName = res.Name
		entry.CreatorName = res.Creator
	case lookup.StatusNotFound:
		return nil, ErrGameNotFound
	case lookup.StatusAmbiguous:
		entry.CanonicalName = placeholderName
		entry.CreatorName = placeholderCreator
		usedPlaceholder = true
	}

	if err := d.entries.Add(entry); err != nil {
		return nil, err
	}

	d.publishNotice(&notify.Notice{
		NoticeId:      uuid.NewString(),
		Kind:          notify.KindGameAdded,
		GameId:        entry.Id,
		GameName:      entry.DisplayName(),
		SubmitterId:   entry.AddedById,
		SubmitterName: entry.AddedByName,
		EmittedAt:     time.Now().UnixMilli(),
	})

	return &AddResult{Entry: entry, UsedPlaceholder: usedPlaceholder}, nil
}

// RemoveGame deletes an entry. Submitters may remove their own entries; bot
// admins and above may remove anyone's.
func (d *Dispatcher) RemoveGame(actor model.Actor, id string) (*model.HubEntry, error) {
	cfg := d.config.Get()
	entry, ok := d.entries.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	if err := permission.AuthorizeOwned(actor, permission.ActionRemoveGame, entry.AddedById, entry.AddedByName, cfg); err != nil {
		return nil, err
	}

	removed, err := d.entries.Remove(id)
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// CustomizeGame sets the submitter-authored name/description overrides. Nil
// leaves a field untouched. Only the original submitter may customize, ever.
func (d *Dispatcher) CustomizeGame(actor model.Actor, id string, customName *string, customDescription *string) (*model.HubEntry, error) {
	cfg := d.config.Get()
	entry, ok := d.entries.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	if err := permission.AuthorizeOwned(actor, permission.ActionCustomizeGame, entry.AddedById, entry.AddedByName, cfg); err != nil {
		return nil, err
	}

	updated, err := d.entries.Update(id, func(e *model.HubEntry) {
		if customName != nil {
			e.CustomName = customName
		}
		if customDescription != nil {
			e.CustomDescription = customDescription
		}
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListGames returns the collection snapshot. Listing is the always-available
// read action: open tier and exempt from the channel restriction.
func (d *Dispatcher) ListGames(actor model.Actor) ([]model.HubEntry, error) {
	if err := permission.Authorize(actor, permission.ActionListGames, d.config.Get()); err != nil {
		return nil, err
	}
	return d.entries.List(), nil
}

// ClearGames removes all entries, returning the prior count.
func (d *Dispatcher) ClearGames(actor model.Actor) (int, error) {
	if err := permission.Authorize(actor, permission.ActionClearGames, d.config.Get()); err != nil {
		return 0, err
	}
	return d.entries.Clear(), nil
}

// SetRestrictedChannel scopes tier-gated commands to one channel; empty
// clears the restriction.
func (d *Dispatcher) SetRestrictedChannel(actor model.Actor, channelId string) error {
	if err := permission.Authorize(actor, permission.ActionSetChannel, d.config.Get()); err != nil {
		return err
	}
	d.config.SetRestrictedChannel(channelId)
	return nil
}

// SetOpenAccess toggles the everyone-gets-GameManager override.
func (d *Dispatcher) SetOpenAccess(actor model.Actor, allow bool) error {
	if err := permission.Authorize(actor, permission.ActionSetOpenAccess, d.config.Get()); err != nil {
		return err
	}
	d.config.SetAllowEveryone(allow)
	return nil
}

// SetNotifyTarget changes who receives out-of-band notices.
func (d *Dispatcher) SetNotifyTarget(actor model.Actor, identity string) error {
	if err := permission.Authorize(actor, permission.ActionSetNotifyTarget, d.config.Get()); err != nil {
		return err
	}
	d.config.SetNotifyTarget(identity)
	return nil
}

// ManageTierRoles adds/removes/lists the roles mapped to a tier.
func (d *Dispatcher) ManageTierRoles(actor model.Actor, tierStr string, op string, role string) ([]string, error) {
	if err := permission.Authorize(actor, permission.ActionManageRoles, d.config.Get()); err != nil {
		return nil, err
	}
	tier, ok := model.ParseTier(tierStr)
	if !ok {
		return nil, ErrUnknownTier
	}

	switch op {
	case "add":
		d.config.AddTierRole(tier, role)
	case "remove":
		d.config.RemoveTierRole(tier, role)
	case "list":
	default:
		return nil, ErrUnknownOp
	}

	cfg := d.config.Get()
	return cfg.RolesForTier(tier), nil
}

// ManageAdmins adds/removes/lists the explicit admin allowlist. Owner only,
// never delegated.
func (d *Dispatcher) ManageAdmins(actor model.Actor, op string, identity string) ([]string, error) {
	if err := permission.Authorize(actor, permission.ActionManageAdmins, d.config.Get()); err != nil {
		return nil, err
	}

	switch op {
	case "add":
		d.config.AddAdmin(identity)
	case "remove":
		d.config.RemoveAdmin(identity)
	case "list":
	default:
		return nil, ErrUnknownOp
	}
	return d.config.Get().BotAdmins, nil
}

// TriggerVerification runs a full verification pass on demand. Returns
// verifier.ErrPassInProgress when one is already running; the trigger is
// dropped.
func (d *Dispatcher) TriggerVerification(ctx context.Context, actor model.Actor) (*verifier.PassStats, error) {
	if err := permission.Authorize(actor, permission.ActionTriggerVerify, d.config.Get()); err != nil {
		return nil, err
	}
	return d.sched.RunOnce(ctx)
}

func (d *Dispatcher) publishNotice(notice *notify.Notice) {
	if d.eventBus == nil {
		return
	}
	if err := notify.Publish(d.eventBus, notice); err != nil {
		Logger.Log.Errorf("failed to publish %s notice for game %s: %v", notice.Kind, notice.GameId, err)
	}
}
