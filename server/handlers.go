package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/retreathub/gamehub/lookup"
	"github.com/retreathub/gamehub/store"
	"github.com/retreathub/gamehub/utils"
	Logger "github.com/retreathub/gamehub/utils/log"
	"github.com/retreathub/gamehub/verifier"
)

type gameView struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Creator     string `json:"creator"`
	Genre       string `json:"genre"`
	Description string `json:"description,omitempty"`
	AddedBy     string `json:"added_by"`
	// Live player count; null when the lookup was inconclusive.
	Playing *int64 `json:"playing"`
}

// GamesHandler serves the read-only entry list for the companion front-end,
// with live-refreshed player counts. One lookup per entry per request is
// acceptable at this volume; the optional redis cache takes the edge off.
func GamesHandler(entries *store.EntryStore, lk lookup.GameLookup, cache *utils.PlayerCountCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		games := []gameView{}
		for _, entry := range entries.List() {
			view := gameView{
				Id:      entry.Id,
				Name:    entry.DisplayName(),
				Creator: entry.CreatorName,
				Genre:   string(entry.Genre),
				AddedBy: entry.AddedByName,
			}
			if entry.CustomDescription != nil {
				view.Description = *entry.CustomDescription
			}
			view.Playing = livePlayerCount(c, entry.Id, lk, cache)
			games = append(games, view)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "games": games})
	}
}

func livePlayerCount(c *gin.Context, gameId string, lk lookup.GameLookup, cache *utils.PlayerCountCache) *int64 {
	if cache != nil {
		if count, ok := cache.Get(gameId); ok {
			return &count
		}
	}

	res := lk.Lookup(c.Request.Context(), gameId)
	if res.Status != lookup.StatusFound {
		return nil
	}
	if cache != nil {
		if err := cache.Set(gameId, res.Playing); err != nil {
			Logger.Log.Warnf("failed to cache player count for game %s: %v", gameId, err)
		}
	}
	count := res.Playing
	return &count
}

// HealthHandler reports entry count and the state of the background
// verification loop.
func HealthHandler(entries *store.EntryStore, sched *verifier.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":               "online",
			"gameCount":            entries.Count(),
			"verificationRunning":  sched.InProgress(),
			"lastVerificationPass": sched.LastPass(),
		})
	}
}

type reportForm struct {
	Id string `json:"id" binding:"required"`
}

// ReportHandler accepts third-party "this game is unreachable" reports. The
// report triggers an on-demand verification of that single entry; only a
// confirmed does-not-exist answer removes it, mirroring the background
// pass's conservative policy.
func ReportHandler(sched *verifier.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form reportForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing game id"})
			return
		}

		removed, status, err := sched.VerifyEntry(c.Request.Context(), form.Id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "game not found in the hub"})
			return
		case errors.Is(err, verifier.ErrPassInProgress):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "a verification pass is already running"})
			return
		case err != nil:
			Logger.Log.Errorf("report verification for game %s failed: %v", form.Id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "verification failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"reportId": uuid.NewString(),
			"removed":  removed,
			"status":   status.String(),
		})
	}
}

// IndexHandler mirrors the original landing payload listing the endpoints.
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Retreat Gateway Hub API",
			"endpoints": []string{"/api/games", "/api/health", "/api/report"},
		})
	}
}
