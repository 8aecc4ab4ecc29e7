package health

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Combine-Capital/cqh/pkg/config"
	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/logging"
	"github.com/Combine-Capital/cqh/pkg/metrics"
)

// Options configures a Manager at construction time.
// These are the only recognized options; everything else is per-probe.
type Options struct {
	// Timeout is the default per-probe execution budget. Default: 5s.
	Timeout time.Duration

	// CheckInterval is the default interval between scheduled runs of a
	// probe. Default: 30s.
	CheckInterval time.Duration

	// EnableAutoCheck starts a periodic timer for every probe registered
	// while it is set.
	EnableAutoCheck bool

	// EnableCompliance gates registration of the compliance probe bundle.
	EnableCompliance bool

	// Logger receives the engine's structured events. Nil discards them.
	Logger *logging.Logger
}

// OptionsFromConfig builds Options from a loaded configuration section.
func OptionsFromConfig(cfg config.HealthConfig, logger *logging.Logger) Options {
	return Options{
		Timeout:          cfg.Timeout,
		CheckInterval:    cfg.CheckInterval,
		EnableAutoCheck:  cfg.EnableAutoCheck,
		EnableCompliance: cfg.EnableCompliance,
		Logger:           logger,
	}
}

// Stats reports the manager's current bookkeeping counts and feature flags.
type Stats struct {
	InstanceID        string        `json:"instance_id"`
	RegisteredProbes  int           `json:"registered_probes"`
	ActiveTimers      int           `json:"active_timers"`
	CachedResults     int           `json:"cached_results"`
	AutoCheckEnabled  bool          `json:"auto_check_enabled"`
	ComplianceEnabled bool          `json:"compliance_enabled"`
	Timeout           time.Duration `json:"timeout"`
	CheckInterval     time.Duration `json:"check_interval"`
}

// Manager composes the probe registry, executor, scheduler, result store,
// and aggregator behind one facade. All methods are safe for concurrent use.
type Manager struct {
	id   string
	opts Options

	mu     sync.RWMutex
	probes map[string]Probe

	store *store
	exec  *executor
	sched *scheduler
	log   *logging.Logger
}

// New creates a Manager with the given options.
// Zero durations fall back to the package defaults (5s timeout, 30s interval).
func New(opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = 30 * time.Second
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	log = log.WithComponent("health")

	m := &Manager{
		id:     uuid.NewString(),
		opts:   opts,
		probes: make(map[string]Probe),
		store:  newStore(),
		log:    log,
	}

	m.exec = &executor{
		store:          m.store,
		defaultTimeout: opts.Timeout,
		log:            log,
	}
	m.sched = newScheduler(m.runScheduled, log)

	return m
}

// NewFromConfig creates a Manager from a loaded configuration section.
func NewFromConfig(cfg config.HealthConfig, logger *logging.Logger) *Manager {
	return New(OptionsFromConfig(cfg, logger))
}

// ID returns the manager's unique instance identifier.
func (m *Manager) ID() string {
	return m.id
}

// ComplianceEnabled reports whether the compliance probe bundle may be
// registered on this manager.
func (m *Manager) ComplianceEnabled() bool {
	return m.opts.EnableCompliance
}

// RegisterCheck stores or replaces a probe definition by name. When
// auto-check is enabled the probe's periodic timer is (re)started; replacing
// a probe cancels the prior timer first so none leak.
func (m *Manager) RegisterCheck(p Probe) error {
	if err := p.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.probes[p.Name] = p
	registered := len(m.probes)
	m.mu.Unlock()

	if m.opts.EnableAutoCheck {
		m.sched.start(p.Name, m.interval(p))
	}

	metrics.SetProbeCounts(registered, m.sched.active())
	m.log.Info().
		Str(logging.Probe, p.Name).
		Bool(logging.Critical, p.Critical).
		Msg("probe registered")

	return nil
}

// UnregisterCheck removes a probe, cancels its timer, and drops its cached
// result. Returns false when no probe with that name exists; unregistering
// an unknown name is not an error.
func (m *Manager) UnregisterCheck(name string) bool {
	m.mu.Lock()
	_, exists := m.probes[name]
	if exists {
		delete(m.probes, name)
	}
	registered := len(m.probes)
	m.mu.Unlock()

	if !exists {
		return false
	}

	m.sched.stop(name)
	m.store.remove(name)

	metrics.SetProbeCounts(registered, m.sched.active())
	m.log.Info().
		Str(logging.Probe, name).
		Msg("probe unregistered")

	return true
}

// RunCheck executes the named probe immediately, regardless of its schedule,
// and records the result. The only error it returns is NotFound for a name
// that was never registered; probe failures come back inside the Result.
func (m *Manager) RunCheck(ctx context.Context, name string) (Result, error) {
	m.mu.RLock()
	p, exists := m.probes[name]
	m.mu.RUnlock()

	if !exists {
		return Result{}, errors.NewNotFound("probe", name)
	}

	return m.exec.Execute(ctx, p), nil
}

// RunAllChecks executes every registered probe concurrently and returns the
// results keyed by probe name. Probes do not block each other; no ordering
// is guaranteed. A failing probe never prevents the others from running.
func (m *Manager) RunAllChecks(ctx context.Context) map[string]Result {
	m.mu.RLock()
	probes := make([]Probe, 0, len(m.probes))
	for _, p := range m.probes {
		probes = append(probes, p)
	}
	m.mu.RUnlock()

	results := make(map[string]Result, len(probes))
	if len(probes) == 0 {
		return results
	}

	type response struct {
		name   string
		result Result
	}

	resultChan := make(chan response, len(probes))
	var wg sync.WaitGroup

	for _, p := range probes {
		wg.Add(1)
		go func(p Probe) {
			defer wg.Done()
			resultChan <- response{name: p.Name, result: m.exec.Execute(ctx, p)}
		}(p)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for r := range resultChan {
		results[r.name] = r.result
	}

	return results
}

// OverallHealth aggregates the latest results into one system-wide view.
// It is a pure read: no probe is executed, and it never fails — an empty
// result set aggregates to healthy with zero counts.
func (m *Manager) OverallHealth() OverallHealth {
	results := m.store.snapshot()

	m.mu.RLock()
	critical := make(map[string]bool, len(m.probes))
	for name, p := range m.probes {
		if p.Critical {
			critical[name] = true
		}
	}
	m.mu.RUnlock()

	return aggregate(results, critical)
}

// LatestResult returns the most recent result for the named probe, if any.
func (m *Manager) LatestResult(name string) (Result, bool) {
	return m.store.get(name)
}

// Stats returns the manager's current counts and configuration flags.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	registered := len(m.probes)
	m.mu.RUnlock()

	return Stats{
		InstanceID:        m.id,
		RegisteredProbes:  registered,
		ActiveTimers:      m.sched.active(),
		CachedResults:     m.store.size(),
		AutoCheckEnabled:  m.opts.EnableAutoCheck,
		ComplianceEnabled: m.opts.EnableCompliance,
		Timeout:           m.opts.Timeout,
		CheckInterval:     m.opts.CheckInterval,
	}
}

// StopAllAutoChecks cancels every scheduler timer. Registered probes and
// cached results are untouched; explicit RunCheck/RunAllChecks still work.
// Idempotent.
func (m *Manager) StopAllAutoChecks() {
	m.sched.stopAll()

	m.mu.RLock()
	registered := len(m.probes)
	m.mu.RUnlock()
	metrics.SetProbeCounts(registered, 0)
}

// Cleanup releases all timer resources so the process can exit cleanly.
// Call it before process exit or test teardown. Idempotent.
func (m *Manager) Cleanup() {
	m.StopAllAutoChecks()
	m.log.Debug().Msg("health manager cleaned up")
}

// interval resolves a probe's scheduling interval against the default.
func (m *Manager) interval(p Probe) time.Duration {
	if p.Interval > 0 {
		return p.Interval
	}
	return m.opts.CheckInterval
}

// runScheduled is the scheduler's callback. It re-resolves the probe by name
// so a re-registered definition takes effect on the next tick, and it skips
// names whose probes have been removed between cancellation and tick.
func (m *Manager) runScheduled(name string) {
	m.mu.RLock()
	p, exists := m.probes[name]
	m.mu.RUnlock()

	if !exists {
		return
	}

	m.exec.Execute(context.Background(), p)
}
