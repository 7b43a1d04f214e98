package store

import (
	"testing"

	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) (*ConfigStore, *storage.MemoryDocumentStore) {
	docs := storage.NewMemoryDocumentStore()
	s, err := NewConfigStore(docs)
	require.NoError(t, err)
	return s, docs
}

func TestConfigStore_DefaultsOnFirstRun(t *testing.T) {
	s, _ := newTestConfigStore(t)

	cfg := s.Get()
	assert.False(t, cfg.AllowEveryone)
	assert.Empty(t, cfg.GameManagerRoles)
	assert.Empty(t, cfg.BotAdmins)
	assert.Empty(t, cfg.RestrictedChannel)
}

func TestConfigStore_TierRoles(t *testing.T) {
	s, _ := newTestConfigStore(t)

	assert.True(t, s.AddTierRole(model.TierGameManager, "r1"))
	assert.True(t, s.AddTierRole(model.TierGameManager, "r1"), "re-adding is a no-op")
	assert.True(t, s.AddTierRole(model.TierBotAdmin, "r2"))
	assert.True(t, s.AddTierRole(model.TierFullAdmin, "r3"))
	assert.False(t, s.AddTierRole(model.TierOwner, "r4"), "owner has no role mapping")

	cfg := s.Get()
	assert.Equal(t, []string{"r1"}, cfg.GameManagerRoles)
	assert.Equal(t, []string{"r2"}, cfg.BotAdminRoles)
	assert.Equal(t, []string{"r3"}, cfg.FullAdminRoles)

	assert.True(t, s.RemoveTierRole(model.TierGameManager, "r1"))
	assert.Empty(t, s.Get().GameManagerRoles)
}

func TestConfigStore_Admins(t *testing.T) {
	s, _ := newTestConfigStore(t)

	s.AddAdmin("u1")
	s.AddAdmin("u1")
	s.AddAdmin("u2")
	assert.Equal(t, []string{"u1", "u2"}, s.Get().BotAdmins)

	s.RemoveAdmin("u1")
	assert.Equal(t, []string{"u2"}, s.Get().BotAdmins)
}

func TestConfigStore_PersistsAcrossReload(t *testing.T) {
	docs := storage.NewMemoryDocumentStore()
	s, err := NewConfigStore(docs)
	require.NoError(t, err)

	s.SetAllowEveryone(true)
	s.SetRestrictedChannel("ch-hub")
	s.SetNotifyTarget("u-mod")

	reloaded, err := NewConfigStore(docs)
	require.NoError(t, err)
	cfg := reloaded.Get()
	assert.True(t, cfg.AllowEveryone)
	assert.Equal(t, "ch-hub", cfg.RestrictedChannel)
	assert.Equal(t, "u-mod", cfg.NotifyTarget)
}

func TestConfigStore_GetReturnsIsolatedCopy(t *testing.T) {
	s, _ := newTestConfigStore(t)
	s.AddTierRole(model.TierGameManager, "r1")

	cfg := s.Get()
	cfg.GameManagerRoles[0] = "tampered"
	assert.Equal(t, []string{"r1"}, s.Get().GameManagerRoles)
}
