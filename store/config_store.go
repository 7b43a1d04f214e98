package store

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/storage"
	"github.com/retreathub/gamehub/utils"
	Logger "github.com/retreathub/gamehub/utils/log"
)

// ConfigStore holds the AccessConfig singleton with the same
// mutex-plus-best-effort-save discipline as EntryStore. Tier checks for the
// mutators are the caller's job (the dispatcher runs them through the
// permission engine first).
type ConfigStore struct {
	m    sync.Mutex
	cfg  model.AccessConfig
	docs storage.DocumentStore
}

// NewConfigStore loads the persisted config, falling back to defaults on
// first run.
func NewConfigStore(docs storage.DocumentStore) (*ConfigStore, error) {
	cfg, err := docs.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		def := model.DefaultAccessConfig()
		cfg = &def
	}
	return &ConfigStore{cfg: *cfg, docs: docs}, nil
}

// Get returns a deep copy of the current config.
func (s *ConfigStore) Get() model.AccessConfig {
	s.m.Lock()
	defer s.m.Unlock()

	cfg := model.AccessConfig{}
	copier.CopyWithOption(&cfg, &s.cfg, copier.Option{DeepCopy: true})
	return cfg
}

func (s *ConfigStore) SetAllowEveryone(allow bool) {
	s.mutate(func(cfg *model.AccessConfig) {
		cfg.AllowEveryone = allow
	})
}

// SetRestrictedChannel scopes tier-gated actions to one channel. Empty
// clears the restriction.
func (s *ConfigStore) SetRestrictedChannel(channelId string) {
	s.mutate(func(cfg *model.AccessConfig) {
		cfg.RestrictedChannel = channelId
	})
}

func (s *ConfigStore) SetNotifyTarget(identity string) {
	s.mutate(func(cfg *model.AccessConfig) {
		cfg.NotifyTarget = identity
	})
}

// AddTierRole maps a role onto a tier. Returns false for tiers that carry no
// role mapping (Open, Owner).
func (s *ConfigStore) AddTierRole(tier model.Tier, role string) bool {
	ok := false
	s.mutate(func(cfg *model.AccessConfig) {
		switch tier {
		case model.TierGameManager:
			cfg.GameManagerRoles = addUnique(cfg.GameManagerRoles, role)
		case model.TierBotAdmin:
			cfg.BotAdminRoles = addUnique(cfg.BotAdminRoles, role)
		case model.TierFullAdmin:
			cfg.FullAdminRoles = addUnique(cfg.FullAdminRoles, role)
		default:
			return
		}
		ok = true
	})
	return ok
}

func (s *ConfigStore) RemoveTierRole(tier model.Tier, role string) bool {
	ok := false
	s.mutate(func(cfg *model.AccessConfig) {
		switch tier {
		case model.TierGameManager:
			cfg.GameManagerRoles = utils.RemoveString(cfg.GameManagerRoles, role)
		case model.TierBotAdmin:
			cfg.BotAdminRoles = utils.RemoveString(cfg.BotAdminRoles, role)
		case model.TierFullAdmin:
			cfg.FullAdminRoles = utils.RemoveString(cfg.FullAdminRoles, role)
		default:
			return
		}
		ok = true
	})
	return ok
}

func (s *ConfigStore) AddAdmin(identity string) {
	s.mutate(func(cfg *model.AccessConfig) {
		cfg.BotAdmins = addUnique(cfg.BotAdmins, identity)
	})
}

func (s *ConfigStore) RemoveAdmin(identity string) {
	s.mutate(func(cfg *model.AccessConfig) {
		cfg.BotAdmins = utils.RemoveString(cfg.BotAdmins, identity)
	})
}

func (s *ConfigStore) mutate(apply func(*model.AccessConfig)) {
	s.m.Lock()
	apply(&s.cfg)
	snapshot := model.AccessConfig{}
	copier.CopyWithOption(&snapshot, &s.cfg, copier.Option{DeepCopy: true})
	s.m.Unlock()

	if err := s.docs.SaveConfig(snapshot); err != nil {
		Logger.Log.Errorf("failed to persist hub config: %v", err)
	}
}

func addUnique(hay []string, needle string) []string {
	if utils.ContainsString(hay, needle) {
		return hay
	}
	return append(hay, needle)
}
