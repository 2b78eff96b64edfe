package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ShutdownContext is cancelled on SIGINT or SIGTERM and remembers which signal arrived.
type ShutdownContext struct {
	context.Context
	cancel context.CancelFunc
	sigCh  chan os.Signal
	once   sync.Once

	mu  sync.Mutex
	sig os.Signal
}

// NewShutdownContext starts listening for termination signals.
// Call Stop to release the signal handler.
func NewShutdownContext(parent context.Context) *ShutdownContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &ShutdownContext{
		Context: ctx,
		cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}
	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			sc.cancel()
		case <-ctx.Done():
		}
		sc.Stop()
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *ShutdownContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// Stop cancels the context and unregisters the signal handler. It is safe to call twice.
func (sc *ShutdownContext) Stop() {
	sc.once.Do(func() {
		signal.Stop(sc.sigCh)
		sc.cancel()
	})
}
