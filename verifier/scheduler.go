package verifier

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/retreathub/gamehub/lookup"
	"github.com/retreathub/gamehub/model"
	"github.com/retreathub/gamehub/notify"
	"github.com/retreathub/gamehub/store"
	Logger "github.com/retreathub/gamehub/utils/log"
)

const removalReason = "the game is no longer available"

// ErrPassInProgress is returned when a verification trigger fires while
// another pass (timer, manual, or single-entry report) is still running. The
// trigger is dropped, not queued.
var ErrPassInProgress = errors.New("a verification pass is already in progress")

type SchedulerConfig struct {
	// Name of the scheduler module.
	Name string

	// How often a full verification pass runs.
	Interval time.Duration

	// Fixed delay between consecutive lookup calls within a pass, to respect
	// the external service's rate limits. Concurrent fan-out is disallowed by
	// design.
	CallDelay time.Duration
}

// PassStats describes the outcome of one verification pass.
type PassStats struct {
	StartedAtMs  int64 `json:"started_at"`
	FinishedAtMs int64 `json:"finished_at"`
	Checked      int   `json:"checked"`
	Removed      int   `json:"removed"`
	Ambiguous    int   `json:"ambiguous"`
}

// Scheduler is the background reconciliation loop keeping the entry store
// consistent with the external game service. Removal is conservative: only
// an explicit not-found signal removes an entry, every ambiguous outcome
// keeps it until a later pass. Silently losing a user's entry is worse than
// a stale entry lingering.
type Scheduler struct {
	Config SchedulerConfig

	entries  *store.EntryStore
	lookup   lookup.GameLookup
	eventBus *gochannel.GoChannel

	// 1 while a pass is running. Shared by the timer, the manual trigger and
	// single-entry verification so at most one runs at a time.
	inProgress int32

	m        sync.RWMutex
	lastPass *PassStats
}

func NewScheduler(config SchedulerConfig, entries *store.EntryStore, lk lookup.GameLookup, e *gochannel.GoChannel) *Scheduler {
	return &Scheduler{
		Config:   config,
		entries:  entries,
		lookup:   lk,
		eventBus: e,
	}
}

func (s *Scheduler) RunModule(ctx context.Context) error {
	ticker := time.NewTicker(s.Config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats, err := s.RunOnce(ctx)
			if errors.Is(err, ErrPassInProgress) {
				Logger.Log.Warn("verification timer fired during a running pass, skipping")
				continue
			}
			if err != nil {
				Logger.Log.Errorf("verification pass aborted: %v", err)
				continue
			}
			Logger.Log.Infof("verification pass done: checked=%d removed=%d ambiguous=%d",
				stats.Checked, stats.Removed, stats.Ambiguous)
		}
	}
}

func (s *Scheduler) Name() string {
	return s.Config.Name
}

func (s *Scheduler) Shutdown() {}

// RunOnce performs one full verification pass: snapshot the entries, query
// the lookup service sequentially with the configured inter-call delay,
// remove every entry the service explicitly reports gone, persist once, and
// emit one removal notice per removed entry.
func (s *Scheduler) RunOnce(ctx context.Context) (*PassStats, error) {
	if !atomic.CompareAndSwapInt32(&s.inProgress, 0, 1) {
		return nil, ErrPassInProgress
	}
	defer atomic.StoreInt32(&s.inProgress, 0)

	stats := &PassStats{StartedAtMs: time.Now().UnixMilli()}
	snapshot := s.entries.List()
	unreachable := []string{}

	for i := range snapshot {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.Config.CallDelay):
			}
		}

		entry := &snapshot[i]
		res := s.lookup.Lookup(ctx, entry.Id)
		stats.Checked++

		switch res.Status {
		case lookup.StatusNotFound:
			unreachable = append(unreachable, entry.Id)
		case lookup.StatusAmbiguous:
			stats.Ambiguous++
			Logger.Log.Warnf("lookup for game %s was inconclusive, keeping entry", entry.Id)
		case lookup.StatusFound:
			if s.entries.RefreshMetadata(entry.Id, res.Name, res.Creator) {
				Logger.Log.Infof("refreshed metadata for game %s", entry.Id)
			}
		}
	}

	removed := s.entries.RemoveBatch(unreachable)
	stats.Removed = len(removed)
	for i := range removed {
		s.publishRemoval(&removed[i])
	}

	stats.FinishedAtMs = time.Now().UnixMilli()
	s.setLastPass(stats)
	return stats, nil
}

// VerifyEntry runs the verification policy for a single entry, used by the
// third-party unreachable-report endpoint. Returns whether the entry was
// removed together with the lookup status.
func (s *Scheduler) VerifyEntry(ctx context.Context, id string) (bool, lookup.Status, error) {
	if _, ok := s.entries.Get(id); !ok {
		return false, lookup.StatusAmbiguous, store.ErrNotFound
	}
	if !atomic.CompareAndSwapInt32(&s.inProgress, 0, 1) {
		return false, lookup.StatusAmbiguous, ErrPassInProgress
	}
	defer atomic.StoreInt32(&s.inProgress, 0)

	res := s.lookup.Lookup(ctx, id)
	switch res.Status {
	case lookup.StatusNotFound:
		removed, err := s.entries.Remove(id)
		if err != nil {
			return false, res.Status, nil
		}
		s.publishRemoval(&removed)
		return true, res.Status, nil
	case lookup.StatusFound:
		s.entries.RefreshMetadata(id, res.Name, res.Creator)
	}
	return false, res.Status, nil
}

// InProgress reports whether a pass is currently running.
func (s *Scheduler) InProgress() bool {
	return atomic.LoadInt32(&s.inProgress) == 1
}

// LastPass returns stats of the most recent completed pass, nil before the
// first one.
func (s *Scheduler) LastPass() *PassStats {
	s.m.RLock()
	defer s.m.RUnlock()
	if s.lastPass == nil {
		return nil
	}
	stats := *s.lastPass
	return &stats
}

func (s *Scheduler) setLastPass(stats *PassStats) {
	s.m.Lock()
	defer s.m.Unlock()
	s.lastPass = stats
}

func (s *Scheduler) publishRemoval(entry *model.HubEntry) {
	notice := &notify.Notice{
		NoticeId:      uuid.NewString(),
		Kind:          notify.KindRemoval,
		GameId:        entry.Id,
		GameName:      entry.DisplayName(),
		SubmitterId:   entry.AddedById,
		SubmitterName: entry.AddedByName,
		Reason:        removalReason,
		EmittedAt:     time.Now().UnixMilli(),
	}
	if err := notify.Publish(s.eventBus, notice); err != nil {
		Logger.Log.Errorf("failed to publish removal notice for game %s: %v", entry.Id, err)
	}
}
