package permission

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/retreathub/gamehub/model"
)

// Policy denials are expected outcomes, not failures. Each carries enough
// detail for the transport adapter to render an actionable message.

type InsufficientTierError struct {
	Action   Action
	Required model.Tier
	Actual   model.Tier
}

func (e *InsufficientTierError) Error() string {
	return fmt.Sprintf("%s requires %s, you have %s", e.Action, e.Required, e.Actual)
}

type NotOwnerError struct {
	OwnerId   string
	OwnerName string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("only the original submitter (%s) may do this", e.OwnerName)
}

type WrongChannelError struct {
	RequiredChannel string
}

func (e *WrongChannelError) Error() string {
	return fmt.Sprintf("hub commands only work in channel %s", e.RequiredChannel)
}

// IsDenial reports whether err is one of the policy denials, as opposed to a
// validation or infrastructure error.
func IsDenial(err error) bool {
	var tierErr *InsufficientTierError
	var ownerErr *NotOwnerError
	var channelErr *WrongChannelError
	return errors.As(err, &tierErr) || errors.As(err, &ownerErr) || errors.As(err, &channelErr)
}
