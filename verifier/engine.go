package verifier

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	Logger "github.com/retreathub/gamehub/utils/log"
)

// Engine manages shared resources and the execution lifecycle of each
// background module. Modules communicate over a shared in-process event bus.
type Engine struct {
	// Modules run in this engine. A module's lifetime is bound to the
	// engine's lifetime, each in a separate goroutine.
	Modules []Module

	// The event bus this engine manages. A golang channel implementation is
	// enough for a single-process bot.
	EventBus *gochannel.GoChannel

	cancel context.CancelFunc
}

func NewEngine(ms []Module, e *gochannel.GoChannel) *Engine {
	return &Engine{
		Modules:  ms,
		EventBus: e,
	}
}

// Run executes all engine modules and blocks until all of them finish.
func (e *Engine) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	var wg sync.WaitGroup
	for idx := range e.Modules {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			Logger.Log.Infof("start engine module %s", e.Modules[index].Name())
			RunModuleWithGracefulRestart(ctx, e.Modules[index])
			Logger.Log.Infof("module %s finished execution", e.Modules[index].Name())
		}(idx)
	}

	wg.Wait()
}

func (e *Engine) Shutdown() {
	Logger.Log.Infoln("starting graceful shutdown process")
	if e.cancel != nil {
		e.cancel()
	}

	var wg sync.WaitGroup
	for idx := range e.Modules {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			e.Modules[index].Shutdown()
			Logger.Log.Infof("module %s shut down", e.Modules[index].Name())
		}(idx)
	}

	wg.Wait()
}
