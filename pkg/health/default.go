package health

import (
	"sync"
)

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

// Default returns a lazily constructed process-wide manager with default
// options (auto-check enabled, compliance disabled, events discarded).
//
// It is a thin convenience for hosts that want exactly one health view and
// no wiring. Anything configurable — and every test — should construct its
// own Manager with New instead.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = New(Options{EnableAutoCheck: true})
	})
	return defaultManager
}
