package bot

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/retreathub/gamehub/hub"
	"github.com/retreathub/gamehub/permission"
	"github.com/retreathub/gamehub/store"
	Logger "github.com/retreathub/gamehub/utils/log"
	"github.com/retreathub/gamehub/verifier"
)

func replyEphemeral(c *gin.Context, text string) {
	c.JSON(http.StatusOK, gin.H{"response_type": "ephemeral", "text": text})
}

func replyInChannel(c *gin.Context, text string) {
	c.JSON(http.StatusOK, gin.H{"response_type": "in_channel", "text": text})
}

// renderError turns a dispatcher error into the user-facing rejection. Every
// expected failure carries its own actionable message; anything else is an
// internal error and gets logged instead of leaked.
func renderError(c *gin.Context, err error) {
	switch {
	case permission.IsDenial(err),
		errors.Is(err, store.ErrDuplicateId),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, hub.ErrInvalidGameRef),
		errors.Is(err, hub.ErrUnknownGenre),
		errors.Is(err, hub.ErrGameNotFound),
		errors.Is(err, hub.ErrUnknownTier),
		errors.Is(err, hub.ErrUnknownOp):
		replyEphemeral(c, err.Error())
	case errors.Is(err, verifier.ErrPassInProgress):
		replyEphemeral(c, "A verification pass is already running, try again in a bit.")
	default:
		Logger.Log.Errorf("command failed: %v", err)
		replyEphemeral(c, "Something went wrong, please contact the mods.")
	}
}
