package verifier

import (
	"context"
	"time"

	Logger "github.com/retreathub/gamehub/utils/log"
)

const gracefulRetryDelay = 3 * time.Second

// Module is a long-running background component whose lifecycle is bound to
// the engine. Each module runs in its own goroutine.
type Module interface {
	// RunModule contains the module's loop. It takes a context by which its
	// lifecycle is managed and returns error if execution failed.
	RunModule(ctx context.Context) error

	// Name uniquely identifies the module instance.
	Name() string

	// Shutdown releases module resources during graceful shutdown.
	Shutdown()
}

// RunModuleWithGracefulRestart restarts a module that exited with error
// after a small delay. The background loops must survive indefinitely; only
// a clean exit (context cancelled) stops the restart cycle.
func RunModuleWithGracefulRestart(ctx context.Context, module Module) {
	for {
		err := module.RunModule(ctx)
		if err == nil {
			return
		}
		Logger.Log.Errorf("module %s exited with error %v, retry in %v",
			module.Name(), err, gracefulRetryDelay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(gracefulRetryDelay):
		}
	}
}
