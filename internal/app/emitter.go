package app

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// wailsEmitter forwards events to the frontend through the Wails runtime.
// Events fired before Startup binds the context are dropped; nothing is
// listening yet.
type wailsEmitter struct {
	mu  sync.RWMutex
	ctx context.Context
}

func newWailsEmitter() *wailsEmitter {
	return &wailsEmitter{}
}

func (e *wailsEmitter) bind(ctx context.Context) {
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()
}

// Emit implements state.Emitter.
func (e *wailsEmitter) Emit(event string, payload ...interface{}) {
	e.mu.RLock()
	ctx := e.ctx
	e.mu.RUnlock()
	if ctx == nil {
		return
	}
	runtime.EventsEmit(ctx, event, payload...)
}
