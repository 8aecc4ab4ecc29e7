package health

import (
	"context"
	"sync"
	"time"

	"github.com/Combine-Capital/cqh/pkg/logging"
)

// scheduler owns one ticker goroutine per auto-checked probe, keyed by probe
// name. Timers fire independently; a slow probe never delays another's
// schedule.
type scheduler struct {
	mu     sync.Mutex
	timers map[string]context.CancelFunc
	wg     sync.WaitGroup

	// run executes the named probe; failures are normalized by the executor,
	// so the loop itself never propagates them.
	run func(name string)
	log *logging.Logger
}

func newScheduler(run func(name string), log *logging.Logger) *scheduler {
	return &scheduler{
		timers: make(map[string]context.CancelFunc),
		run:    run,
		log:    log,
	}
}

// start begins periodic execution of the named probe, replacing any prior
// timer for that name. Replacement is atomic under the scheduler lock so a
// re-registration can never leak the old timer.
func (s *scheduler) start(name string, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, exists := s.timers[name]; exists {
		cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.timers[name] = cancel

	s.wg.Add(1)
	go s.loop(ctx, name, interval)

	s.log.Info().
		Str(logging.Probe, name).
		Dur("interval", interval).
		Msg("auto-check timer started")
}

func (s *scheduler) loop(ctx context.Context, name string, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(name)
		}
	}
}

// stop cancels the named probe's timer. Returns whether a timer existed.
func (s *scheduler) stop(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancel, exists := s.timers[name]
	if !exists {
		return false
	}

	cancel()
	delete(s.timers, name)

	s.log.Info().
		Str(logging.Probe, name).
		Msg("auto-check timer stopped")

	return true
}

// stopAll cancels every active timer and waits for the loops to exit.
// It is idempotent and must be called before process exit so no timer
// goroutines leak.
func (s *scheduler) stopAll() {
	s.mu.Lock()
	for name, cancel := range s.timers {
		cancel()
		delete(s.timers, name)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// active returns the number of currently running timers.
func (s *scheduler) active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}
