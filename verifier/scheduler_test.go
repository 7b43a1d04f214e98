package verifier

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/retreathub/gamehub/lookup"
	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/notify"
	"github.com/retreathub/gamehub/storage"
	"github.com/retreathub/gamehub/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) (*Scheduler, *store.EntryStore, *lookup.FakeLookup, *gochannel.GoChannel) {
	entries, err := store.NewEntryStore(storage.NewMemoryDocumentStore())
	require.NoError(t, err)

	lk := lookup.NewFakeLookup()
	bus := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{})
	s := NewScheduler(SchedulerConfig{
		Name:      "verifier",
		Interval:  time.Hour,
		CallDelay: time.Millisecond,
	}, entries, lk, bus)
	return s, entries, lk, bus
}

func addEntry(t *testing.T, entries *store.EntryStore, id string, submitterId string) {
	require.NoError(t, entries.Add(model.HubEntry{
		Id:            id,
		CanonicalName: "game " + id,
		CreatorName:   "creator",
		Genre:         model.GenreOfficial,
		AddedById:     submitterId,
		AddedByName:   submitterId + "#tag",
		AddedAtMs:     1700000000000,
	}))
}

func subscribeNotices(t *testing.T, bus *gochannel.GoChannel) <-chan *message.Message {
	messages, err := bus.Subscribe(context.Background(), notify.TopicNotice)
	require.NoError(t, err)
	return messages
}

func receiveNotice(t *testing.T, messages <-chan *message.Message) *notify.Notice {
	select {
	case msg := <-messages:
		msg.Ack()
		notice, err := notify.UnmarshalNotice(msg.Payload)
		require.NoError(t, err)
		return notice
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notice on the bus")
		return nil
	}
}

func assertNoNotice(t *testing.T, messages <-chan *message.Message) {
	select {
	case msg := <-messages:
		t.Fatalf("unexpected notice: %s", string(msg.Payload))
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunOnce_RemovesOnlyUnreachableEntries(t *testing.T) {
	s, entries, lk, bus := newTestScheduler(t)
	messages := subscribeNotices(t, bus)

	addEntry(t, entries, "x", "u-x")
	addEntry(t, entries, "y", "u-y")
	lk.Results["x"] = lookup.Result{Status: lookup.StatusNotFound}
	lk.Results["y"] = lookup.Result{Status: lookup.StatusFound, Name: "game y", Creator: "creator"}

	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Checked)
	assert.Equal(t, 1, stats.Removed)

	_, ok := entries.Get("x")
	assert.False(t, ok, "x must be removed")
	_, ok = entries.Get("y")
	assert.True(t, ok, "y must be kept")

	// Exactly one notice, addressed to x's submitter.
	notice := receiveNotice(t, messages)
	assert.Equal(t, notify.KindRemoval, notice.Kind)
	assert.Equal(t, "x", notice.GameId)
	assert.Equal(t, "u-x", notice.SubmitterId)
	assertNoNotice(t, messages)
}

func TestRunOnce_AmbiguousOutcomeKeepsEntry(t *testing.T) {
	s, entries, lk, bus := newTestScheduler(t)
	messages := subscribeNotices(t, bus)

	addEntry(t, entries, "z", "u-z")
	// No canned result: the fake resolves z as ambiguous (timeout-like).
	_ = lk

	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Ambiguous)
	assert.Equal(t, 0, stats.Removed)

	_, ok := entries.Get("z")
	assert.True(t, ok, "ambiguous lookup must keep the entry")
	assertNoNotice(t, messages)
}

func TestRunOnce_ChecksSequentiallyInListOrder(t *testing.T) {
	s, entries, lk, _ := newTestScheduler(t)

	for _, id := range []string{"1", "2", "3"} {
		addEntry(t, entries, id, "u")
		lk.Results[id] = lookup.Result{Status: lookup.StatusFound, Name: "game " + id, Creator: "creator"}
	}

	_, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, lk.Calls)
}

func TestRunOnce_RefreshesChangedMetadata(t *testing.T) {
	s, entries, lk, _ := newTestScheduler(t)

	addEntry(t, entries, "1", "u")
	lk.Results["1"] = lookup.Result{Status: lookup.StatusFound, Name: "renamed", Creator: "new creator"}

	_, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	got, ok := entries.Get("1")
	require.True(t, ok)
	assert.Equal(t, "renamed", got.CanonicalName)
	assert.Equal(t, "new creator", got.CreatorName)
}

func TestRunOnce_OverlappingTriggersAreDropped(t *testing.T) {
	s, entries, lk, _ := newTestScheduler(t)

	addEntry(t, entries, "1", "u")
	lk.Results["1"] = lookup.Result{Status: lookup.StatusFound, Name: "game 1", Creator: "creator"}
	lk.Block = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.RunOnce(context.Background())
		firstDone <- err
	}()

	// Wait for the first pass to be inside the lookup call.
	require.Eventually(t, s.InProgress, time.Second, time.Millisecond)

	_, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrPassInProgress)

	close(lk.Block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, lk.CallCount(), "the second trigger must be a no-op")
}

func TestVerifyEntry_RemovesOnExplicitNotFound(t *testing.T) {
	s, entries, lk, bus := newTestScheduler(t)
	messages := subscribeNotices(t, bus)

	addEntry(t, entries, "1", "u-1")
	lk.Results["1"] = lookup.Result{Status: lookup.StatusNotFound}

	removed, status, err := s.VerifyEntry(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, lookup.StatusNotFound, status)

	_, ok := entries.Get("1")
	assert.False(t, ok)

	notice := receiveNotice(t, messages)
	assert.Equal(t, "u-1", notice.SubmitterId)
}

func TestVerifyEntry_KeepsOnAmbiguous(t *testing.T) {
	s, entries, _, bus := newTestScheduler(t)
	messages := subscribeNotices(t, bus)

	addEntry(t, entries, "1", "u-1")

	removed, status, err := s.VerifyEntry(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, lookup.StatusAmbiguous, status)

	_, ok := entries.Get("1")
	assert.True(t, ok)
	assertNoNotice(t, messages)
}

func TestVerifyEntry_UnknownId(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)

	_, _, err := s.VerifyEntry(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRunModule_StopsOnContextCancel(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)
	s.Config.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunModule(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunModule did not stop on cancellation")
	}
}
