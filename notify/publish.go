package notify

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publish puts a notice on the event bus for the notifier module to deliver.
func Publish(bus *gochannel.GoChannel, notice *Notice) error {
	data, err := notice.Marshal()
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	return bus.Publish(TopicNotice, msg)
}
