package verifier

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/retreathub/gamehub/notify"
	"github.com/retreathub/gamehub/store"
	Logger "github.com/retreathub/gamehub/utils/log"
)

type NotifierConfig struct {
	// Name of the notifier module.
	Name string
}

// Notifier consumes notices from the event bus and delivers each one to the
// configured notify target, independently and best effort. A failed
// delivery is logged and dropped; it never rolls back the removal that
// produced it.
type Notifier struct {
	Config NotifierConfig

	sender   notify.Sender
	config   *store.ConfigStore
	eventBus *gochannel.GoChannel
}

func NewNotifier(config NotifierConfig, sender notify.Sender, cfg *store.ConfigStore, e *gochannel.GoChannel) *Notifier {
	return &Notifier{
		Config:   config,
		sender:   sender,
		config:   cfg,
		eventBus: e,
	}
}

func (n *Notifier) RunModule(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := n.eventBus.Subscribe(ctx, notify.TopicNotice)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		notice, err := notify.UnmarshalNotice(msg.Payload)
		if err != nil {
			Logger.Log.Errorf("dropping malformed notice: %v", err)
			continue
		}

		target := n.config.Get().NotifyTarget
		if err := n.sender.Send(notice, target); err != nil {
			Logger.Log.Errorf("failed to deliver notice %s: %v", notice.NoticeId, err)
		}
	}

	return nil
}

func (n *Notifier) Name() string {
	return n.Config.Name
}

func (n *Notifier) Shutdown() {}
