package model

// Actor is the identity attempting an action, as reported by the chat
// platform. The bot trusts these claims, it does no authentication of its
// own.
type Actor struct {
	Id          string
	DisplayName string

	// True iff this identity is the server owner from the deployment config.
	IsOwner bool

	// Role ids the platform reports for this actor.
	Roles []string

	// Channel the action was issued from. Empty for transports that have no
	// channel notion (e.g. the HTTP API).
	ChannelId string
}
