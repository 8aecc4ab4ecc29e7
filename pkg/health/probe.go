// Package health provides health check orchestration for infrastructure components.
// It registers named probes, executes them under timeout control, runs them on
// independent periodic schedules, and aggregates per-probe results into a single
// system-wide status with critical-failure escalation.
//
// Example usage:
//
//	m := health.New(health.Options{
//	    Timeout:       2 * time.Second,
//	    CheckInterval: 30 * time.Second,
//	})
//	defer m.Cleanup()
//
//	m.RegisterCheck(health.Probe{
//	    Name:     "database",
//	    Critical: true,
//	    Check: health.FromChecker(func(ctx context.Context) error {
//	        return pool.Ping(ctx)
//	    }),
//	})
//
//	overall := m.OverallHealth()
//	if overall.Status != health.StatusHealthy {
//	    log.Printf("system %s: %+v", overall.Status, overall.Summary)
//	}
package health

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Combine-Capital/cqh/pkg/errors"
)

// Status represents the health status of a probe or of the whole system.
// Severity is ordered: StatusHealthy < StatusDegraded < StatusUnhealthy.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component is functioning but with issues.
	StatusDegraded
	// StatusUnhealthy indicates the component is not functioning properly.
	StatusUnhealthy
)

// MarshalJSON encodes the status as its string form so serialized results
// read "healthy" rather than an enum ordinal.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a single probe execution.
// Results are immutable once committed; the engine retains only the most
// recent result per probe name.
type Result struct {
	// Name is the name of the probe that produced this result.
	Name string `json:"name"`

	// Status is the health status.
	Status Status `json:"status"`

	// Message provides additional context about the status.
	Message string `json:"message,omitempty"`

	// Metadata contains probe-specific diagnostic detail.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Duration is the measured wall-clock execution time.
	// Self-reported durations are overwritten by the executor.
	Duration time.Duration `json:"duration"`

	// Timestamp is when the result was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Classification is an opaque sensitivity label carried through
	// unmodified for downstream policy interpretation.
	Classification string `json:"classification,omitempty"`
}

// Healthy creates a healthy result with the given message.
func Healthy(message string) Result {
	return Result{
		Status:  StatusHealthy,
		Message: message,
	}
}

// Degraded creates a degraded result with the given message.
func Degraded(message string) Result {
	return Result{
		Status:  StatusDegraded,
		Message: message,
	}
}

// Unhealthy creates an unhealthy result with the given message.
func Unhealthy(message string) Result {
	return Result{
		Status:  StatusUnhealthy,
		Message: message,
	}
}

// WithMetadata adds metadata to a result.
func (r Result) WithMetadata(metadata map[string]any) Result {
	r.Metadata = metadata
	return r
}

// WithClassification sets the classification label on a result.
func (r Result) WithClassification(classification string) Result {
	r.Classification = classification
	return r
}

// ProbeFunc performs one health check. Implementations should respect the
// context deadline; a non-nil error is normalized by the executor into an
// unhealthy result carrying the error text.
type ProbeFunc func(ctx context.Context) (Result, error)

// FromChecker adapts a plain error-returning check into a ProbeFunc.
// A nil error maps to a healthy result.
func FromChecker(fn func(ctx context.Context) error) ProbeFunc {
	return func(ctx context.Context) (Result, error) {
		if err := fn(ctx); err != nil {
			return Result{}, err
		}
		return Healthy("ok"), nil
	}
}

// Probe is the immutable definition of a named health check.
// A probe is owned by the manager from registration until unregistration;
// re-registering the same name replaces the prior definition and its timer.
type Probe struct {
	// Name uniquely identifies the probe within a manager.
	Name string

	// Check is the operation executed on every run.
	Check ProbeFunc

	// Timeout overrides the manager's default execution budget when non-zero.
	Timeout time.Duration

	// Interval overrides the manager's default scheduling interval when
	// non-zero. Only meaningful when auto-check is enabled.
	Interval time.Duration

	// Critical marks a probe whose unhealthy result escalates the overall
	// status to unhealthy rather than degraded.
	Critical bool

	// Tags are free-form labels for filtering and grouping.
	// The engine does not interpret them.
	Tags []string

	// Classification, when set, is stamped onto results that do not carry
	// their own label.
	Classification string
}

// validate checks that the probe definition is usable.
func (p Probe) validate() error {
	if p.Name == "" {
		return errors.NewInvalidInput("name", "probe name is required")
	}
	if p.Check == nil {
		return errors.NewInvalidInput("check", "probe check function is required")
	}
	if p.Timeout < 0 {
		return errors.NewInvalidInput("timeout", "probe timeout must not be negative")
	}
	if p.Interval < 0 {
		return errors.NewInvalidInput("interval", "probe interval must not be negative")
	}
	return nil
}
