package bot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/retreathub/gamehub/hub"
	"github.com/retreathub/gamehub/lookup"
	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/storage"
	"github.com/retreathub/gamehub/store"
	"github.com/retreathub/gamehub/verifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwnerId = "u-owner"

func newTestRouter(t *testing.T) (*gin.Engine, *store.ConfigStore, *lookup.FakeLookup) {
	gin.SetMode(gin.TestMode)

	entries, err := store.NewEntryStore(storage.NewMemoryDocumentStore())
	require.NoError(t, err)
	config, err := store.NewConfigStore(storage.NewMemoryDocumentStore())
	require.NoError(t, err)

	lk := lookup.NewFakeLookup()
	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	sched := verifier.NewScheduler(verifier.SchedulerConfig{
		Name: "verifier", Interval: time.Hour, CallDelay: time.Millisecond,
	}, entries, lk, bus)
	dispatcher := hub.NewDispatcher(entries, config, lk, sched, bus)

	router := gin.New()
	router.POST("/bot/cmd", CommandHandler(dispatcher, testOwnerId))
	return router, config, lk
}

func postCommand(t *testing.T, router *gin.Engine, form url.Values) (int, map[string]string) {
	req := httptest.NewRequest(http.MethodPost, "/bot/cmd", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := map[string]string{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func commandForm(command string, userId string, roles string, text string) url.Values {
	return url.Values{
		"command":    {command},
		"channel_id": {"ch-1"},
		"user_id":    {userId},
		"user_name":  {userId + "#tag"},
		"roles":      {roles},
		"text":       {text},
	}
}

func TestCommandHandler_AddAndList(t *testing.T) {
	router, config, lk := newTestRouter(t)
	config.AddTierRole(model.TierGameManager, "r1")
	lk.Results["123"] = lookup.Result{Status: lookup.StatusFound, Name: "Sword Arena", Creator: "bladeworks"}

	code, body := postCommand(t, router, commandForm("/addgame", "u1", "r1", "https://www.roblox.com/games/123/arena Official"))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "in_channel", body["response_type"])
	assert.Contains(t, body["text"], "Sword Arena")

	code, body = postCommand(t, router, commandForm("/listgames", "u2", "", ""))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["text"], "Sword Arena")
	assert.Contains(t, body["text"], "1 total")
}

func TestCommandHandler_DenialIsActionable(t *testing.T) {
	router, _, _ := newTestRouter(t)

	code, body := postCommand(t, router, commandForm("/cleargames", "u1", "", ""))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ephemeral", body["response_type"])
	assert.Contains(t, body["text"], "BotAdmin")
}

func TestCommandHandler_OwnerBypassesTiers(t *testing.T) {
	router, _, _ := newTestRouter(t)

	code, body := postCommand(t, router, commandForm("/cleargames", testOwnerId, "", ""))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["text"], "Cleared 0 games")
}

func TestCommandHandler_CustomizePipeSyntax(t *testing.T) {
	router, config, lk := newTestRouter(t)
	config.AddTierRole(model.TierGameManager, "r1")
	lk.Results["123"] = lookup.Result{Status: lookup.StatusFound, Name: "game", Creator: "c"}

	postCommand(t, router, commandForm("/addgame", "u1", "r1", "123 Crim"))

	// Name only: the description segment is empty and stays unset.
	code, body := postCommand(t, router, commandForm("/customize", "u1", "r1", "123 my heist game |"))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body["text"], "my heist game")
}

func TestCommandHandler_UnknownCommand(t *testing.T) {
	router, _, _ := newTestRouter(t)

	code, _ := postCommand(t, router, commandForm("/frobnicate", "u1", "", ""))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSplitCustomization(t *testing.T) {
	name, desc := splitCustomization("cool name | a description")
	require.NotNil(t, name)
	require.NotNil(t, desc)
	assert.Equal(t, "cool name", *name)
	assert.Equal(t, "a description", *desc)

	name, desc = splitCustomization("cool name |")
	require.NotNil(t, name)
	assert.Nil(t, desc)

	name, desc = splitCustomization("| only desc")
	assert.Nil(t, name)
	require.NotNil(t, desc)
	assert.Equal(t, "only desc", *desc)
}
