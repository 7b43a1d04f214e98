package lookup

import (
	"context"
	"sync"
)

// FakeLookup serves canned results, for tests. Ids without a canned result
// resolve as ambiguous.
type FakeLookup struct {
	m sync.Mutex

	Results map[string]Result
	Calls   []string

	// When non-nil, every Lookup blocks until the channel is closed. Used to
	// hold a verification pass open.
	Block chan struct{}
}

func NewFakeLookup() *FakeLookup {
	return &FakeLookup{Results: map[string]Result{}}
}

func (f *FakeLookup) Lookup(ctx context.Context, gameId string) Result {
	f.m.Lock()
	f.Calls = append(f.Calls, gameId)
	block := f.Block
	res, ok := f.Results[gameId]
	f.m.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return Result{Status: StatusAmbiguous}
		}
	}
	if !ok {
		return Result{Status: StatusAmbiguous}
	}
	return res
}

func (f *FakeLookup) CallCount() int {
	f.m.Lock()
	defer f.m.Unlock()
	return len(f.Calls)
}
