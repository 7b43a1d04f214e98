package verifier

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
	"github.com/retreathub/gamehub/notify"
	"github.com/retreathub/gamehub/storage"
	"github.com/retreathub/gamehub/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) (*Notifier, *notify.FakeSender, *gochannel.GoChannel, *store.ConfigStore) {
	cfg, err := store.NewConfigStore(storage.NewMemoryDocumentStore())
	require.NoError(t, err)

	sender := &notify.FakeSender{}
	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	n := NewNotifier(NotifierConfig{Name: "notifier"}, sender, cfg, bus)
	return n, sender, bus, cfg
}

func TestNotifier_DeliversPublishedNotices(t *testing.T) {
	n, sender, bus, cfg := newTestNotifier(t)
	cfg.SetNotifyTarget("u-mod")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go n.RunModule(ctx)

	// Give the subscriber a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, notify.Publish(bus, &notify.Notice{
		NoticeId: "n1",
		Kind:     notify.KindRemoval,
		GameId:   "123",
	}))

	require.Eventually(t, func() bool {
		return len(sender.SentNotices()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "n1", sender.SentNotices()[0].NoticeId)
}

func TestNotifier_DeliveryFailureDoesNotStopTheLoop(t *testing.T) {
	n, sender, bus, _ := newTestNotifier(t)
	sender.Fail = errors.New("webhook down")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		n.RunModule(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, notify.Publish(bus, &notify.Notice{NoticeId: "n1"}))
	require.NoError(t, notify.Publish(bus, &notify.Notice{NoticeId: "n2"}))

	select {
	case <-done:
		t.Fatal("notifier stopped on a delivery failure")
	case <-time.After(200 * time.Millisecond):
	}
}
