package bot

// This handler is the chat-platform adapter: it binds the slash-command form
// the platform posts to us, builds the acting identity, and hands off to the
// dispatcher. All policy lives behind the dispatcher; this layer only parses
// arguments and renders results.

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retreathub/gamehub/hub"
	"github.com/retreathub/gamehub/model"
)

type CommandForm struct {
	Command   string `form:"command" binding:"required"`
	ChannelId string `form:"channel_id" binding:"required"`
	UserId    string `form:"user_id" binding:"required"`
	UserName  string `form:"user_name"`
	// Role ids the platform reports for the user, comma separated.
	Roles string `form:"roles"`
	Text  string `form:"text"`
}

func (f *CommandForm) actor(ownerId string) model.Actor {
	roles := []string{}
	for _, role := range strings.Split(f.Roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	return model.Actor{
		Id:          f.UserId,
		DisplayName: f.UserName,
		IsOwner:     ownerId != "" && f.UserId == ownerId,
		Roles:       roles,
		ChannelId:   f.ChannelId,
	}
}

// CommandHandler routes the slash commands onto dispatcher operations.
func CommandHandler(d *hub.Dispatcher, ownerId string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form CommandForm
		if err := c.Bind(&form); err != nil {
			return
		}

		actor := form.actor(ownerId)
		args := strings.Fields(form.Text)

		switch form.Command {
		case "/addgame":
			handleAddGame(c, d, actor, args)
		case "/removegame":
			handleRemoveGame(c, d, actor, args)
		case "/customize":
			handleCustomize(c, d, actor, form.Text)
		case "/listgames":
			handleListGames(c, d, actor)
		case "/cleargames":
			handleClearGames(c, d, actor)
		case "/restrict":
			handleRestrict(c, d, actor, args)
		case "/hubroles":
			handleHubRoles(c, d, actor, args)
		case "/hubadmins":
			handleHubAdmins(c, d, actor, args)
		case "/openaccess":
			handleOpenAccess(c, d, actor, args)
		case "/notifytarget":
			handleNotifyTarget(c, d, actor, args)
		case "/verify":
			handleVerify(c, d, actor)
		default:
			c.JSON(http.StatusNotFound, gin.H{
				"response_type": "ephemeral",
				"text":          "Sorry, that's an unknown command",
			})
		}
	}
}

func handleAddGame(c *gin.Context, d *hub.Dispatcher, actor model.Actor, args []string) {
	if len(args) < 2 {
		replyEphemeral(c, "Usage: /addgame <game link or id> <genre>")
		return
	}
	res, err := d.AddGame(c.Request.Context(), actor, args[0], args[1])
	if err != nil {
		renderError(c, err)
		return
	}

	text := fmt.Sprintf("Added *%s* (id %s) by %s to the hub.",
		res.Entry.CanonicalName, res.Entry.Id, res.Entry.CreatorName)
	if res.UsedPlaceholder {
		text += " The game service was unavailable, metadata will be refreshed on the next verification pass."
	}
	replyInChannel(c, text)
}

func handleRemoveGame(c *gin.Context, d *hub.Dispatcher, actor model.Actor, args []string) {
	if len(args) < 1 {
		replyEphemeral(c, "Usage: /removegame <game id>")
		return
	}
	removed, err := d.RemoveGame(actor, args[0])
	if err != nil {
		renderError(c, err)
		return
	}
	replyInChannel(c, fmt.Sprintf("Removed *%s* (id %s) from the hub.", removed.DisplayName(), removed.Id))
}

func handleCustomize(c *gin.Context, d *hub.Dispatcher, actor model.Actor, text string) {
	// /customize <id> <name> | <description> — either side of the pipe may be
	// left empty to keep the current value.
	fields := strings.SplitN(strings.TrimSpace(text), " ", 2)
	if len(fields) < 2 {
		replyEphemeral(c, "Usage: /customize <game id> <name> | <description>")
		return
	}
	id := fields[0]
	name, desc := splitCustomization(fields[1])

	updated, err := d.CustomizeGame(actor, id, name, desc)
	if err != nil {
		renderError(c, err)
		return
	}
	replyEphemeral(c, fmt.Sprintf("Updated your listing for *%s*.", updated.DisplayName()))
}

func splitCustomization(text string) (*string, *string) {
	var name, desc *string
	parts := strings.SplitN(text, "|", 2)
	if n := strings.TrimSpace(parts[0]); n != "" {
		name = &n
	}
	if len(parts) == 2 {
		if d := strings.TrimSpace(parts[1]); d != "" {
			desc = &d
		}
	}
	return name, desc
}

func handleListGames(c *gin.Context, d *hub.Dispatcher, actor model.Actor) {
	games, err := d.ListGames(actor)
	if err != nil {
		renderError(c, err)
		return
	}
	if len(games) == 0 {
		replyEphemeral(c, "No games in the hub yet!")
		return
	}

	lines := []string{fmt.Sprintf("*Games in Hub* (%d total)", len(games))}
	for i, game := range games {
		lines = append(lines, fmt.Sprintf("%d. *%s* [%s] — id %s, creator %s, added by %s",
			i+1, game.DisplayName(), game.Genre, game.Id, game.CreatorName, game.AddedByName))
	}
	replyInChannel(c, strings.Join(lines, "\n"))
}

func handleClearGames(c *gin.Context, d *hub.Dispatcher, actor model.Actor) {
	count, err := d.ClearGames(actor)
	if err != nil {
		renderError(c, err)
		return
	}
	replyInChannel(c, fmt.Sprintf("Cleared %d games from the hub.", count))
}

func handleRestrict(c *gin.Context, d *hub.Dispatcher, actor model.Actor, args []string) {
	if len(args) < 1 {
		replyEphemeral(c, "Usage: /restrict <channel id>|off")
		return
	}
	channel := args[0]
	if channel == "off" {
		channel = ""
	}
	if err := d.SetRestrictedChannel(actor, channel); err != nil {
		renderError(c, err)
		return
	}
	if channel == "" {
		replyEphemeral(c, "Channel restriction cleared.")
		return
	}
	replyEphemeral(c, fmt.Sprintf("Hub commands are now restricted to channel %s.", channel))
}

func handleHubRoles(c *gin.Context, d *hub.Dispatcher, actor model.Actor, args []string) {
	if len(args) < 2 {
		replyEphemeral(c, "Usage: /hubroles <manager|admin|fulladmin> <add|remove|list> [role id]")
		return
	}
	role := ""
	if len(args) > 2 {
		role = args[2]
	}
	roles, err := d.ManageTierRoles(actor, args[0], args[1], role)
	if err != nil {
		renderError(c, err)
		return
	}
	replyEphemeral(c, fmt.Sprintf("Roles for tier %s: %s", args[0], formatList(roles)))
}

func handleHubAdmins(c *gin.Context, d *hub.Dispatcher, actor model.Actor, args []string) {
	if len(args) < 1 {
		replyEphemeral(c, "Usage: /hubadmins <add|remove|list> [user id]")
		return
	}
	identity := ""
	if len(args) > 1 {
		identity = args[1]
	}
	admins, err := d.ManageAdmins(actor, args[0], identity)
	if err != nil {
		renderError(c, err)
		return
	}
	replyEphemeral(c, fmt.Sprintf("Bot admins: %s", formatList(admins)))
}

func handleOpenAccess(c *gin.Context, d *hub.Dispatcher, actor model.Actor, args []string) {
	if len(args) < 1 || (args[0] != "on" && args[0] != "off") {
		replyEphemeral(c, "Usage: /openaccess <on|off>")
		return
	}
	if err := d.SetOpenAccess(actor, args[0] == "on"); err != nil {
		renderError(c, err)
		return
	}
	replyEphemeral(c, fmt.Sprintf("Open access is now %s.", args[0]))
}

func handleNotifyTarget(c *gin.Context, d *hub.Dispatcher, actor model.Actor, args []string) {
	if len(args) < 1 {
		replyEphemeral(c, "Usage: /notifytarget <user id>")
		return
	}
	if err := d.SetNotifyTarget(actor, args[0]); err != nil {
		renderError(c, err)
		return
	}
	replyEphemeral(c, fmt.Sprintf("Hub notices now go to %s.", args[0]))
}

func handleVerify(c *gin.Context, d *hub.Dispatcher, actor model.Actor) {
	stats, err := d.TriggerVerification(c.Request.Context(), actor)
	if err != nil {
		renderError(c, err)
		return
	}
	replyEphemeral(c, fmt.Sprintf("Verification done: checked %d, removed %d, inconclusive %d.",
		stats.Checked, stats.Removed, stats.Ambiguous))
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
