package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	Logger "github.com/retreathub/gamehub/utils/log"
)

const (
	defaultUniverseApiBase = "https://apis.roblox.com"
	defaultGamesApiBase    = "https://games.roblox.com"
)

// RobloxClient resolves game metadata with the two-step universe lookup:
// place id -> universe id -> game record. Every call is bounded by the
// client timeout; anything that is not a definitive answer comes back as
// StatusAmbiguous.
type RobloxClient struct {
	client *http.Client

	// Base urls are overridable for tests.
	UniverseApiBase string
	GamesApiBase    string
}

func NewRobloxClient(timeout time.Duration) *RobloxClient {
	return &RobloxClient{
		client:          &http.Client{Timeout: timeout},
		UniverseApiBase: defaultUniverseApiBase,
		GamesApiBase:    defaultGamesApiBase,
	}
}

type universeResponse struct {
	UniverseId int64 `json:"universeId"`
}

type gamesResponse struct {
	Data []struct {
		Name    string `json:"name"`
		Playing int64  `json:"playing"`
		Creator struct {
			Name string `json:"name"`
		} `json:"creator"`
	} `json:"data"`
}

func (c *RobloxClient) Lookup(ctx context.Context, gameId string) Result {
	universeId, status := c.resolveUniverse(ctx, gameId)
	if status != StatusFound {
		return Result{Status: status}
	}
	return c.fetchGame(ctx, gameId, universeId)
}

func (c *RobloxClient) resolveUniverse(ctx context.Context, gameId string) (int64, Status) {
	url := fmt.Sprintf("%s/universes/v1/places/%s/universe", c.UniverseApiBase, gameId)
	res, status := c.getJson(ctx, gameId, url, &universeResponse{})
	if status != StatusFound {
		return 0, status
	}
	universe := res.(*universeResponse)
	if universe.UniverseId == 0 {
		// The endpoint answers 200 with a null universe for deleted places.
		return 0, StatusNotFound
	}
	return universe.UniverseId, StatusFound
}

func (c *RobloxClient) fetchGame(ctx context.Context, gameId string, universeId int64) Result {
	url := fmt.Sprintf("%s/v1/games?universeIds=%d", c.GamesApiBase, universeId)
	res, status := c.getJson(ctx, gameId, url, &gamesResponse{})
	if status != StatusFound {
		return Result{Status: status}
	}
	games := res.(*gamesResponse)
	if len(games.Data) == 0 {
		return Result{Status: StatusNotFound}
	}
	return Result{
		Status:  StatusFound,
		Name:    games.Data[0].Name,
		Creator: games.Data[0].Creator.Name,
		Playing: games.Data[0].Playing,
	}
}

// getJson classifies the transport outcome: 2xx with a parsable body is
// Found, 400/404 is the explicit does-not-exist signal, everything else
// (timeouts, 429, 5xx, garbage bodies) is Ambiguous.
func (c *RobloxClient) getJson(ctx context.Context, gameId string, url string, out interface{}) (interface{}, Status) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, StatusAmbiguous
	}

	resp, err := c.client.Do(req)
	if err != nil {
		Logger.Log.Warnf("lookup for game %s failed: %v", gameId, err)
		return nil, StatusAmbiguous
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return nil, StatusNotFound
	case resp.StatusCode >= 300:
		Logger.Log.Warnf("lookup for game %s: non-200 http code %d", gameId, resp.StatusCode)
		return nil, StatusAmbiguous
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		Logger.Log.Warnf("lookup for game %s: malformed response: %v", gameId, err)
		return nil, StatusAmbiguous
	}
	return out, StatusFound
}
