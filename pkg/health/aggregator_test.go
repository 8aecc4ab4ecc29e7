package health

import (
	"context"
	"testing"
	"time"

	"github.com/Combine-Capital/cqh/pkg/errors"
)

// TestAggregate_CriticalUnhealthyEscalates verifies one unhealthy critical
// probe fails the whole system regardless of how the others look
func TestAggregate_CriticalUnhealthyEscalates(t *testing.T) {
	results := map[string]Result{
		"database":   {Name: "database", Status: StatusUnhealthy},
		"cache":      {Name: "cache", Status: StatusHealthy},
		"event_bus":  {Name: "event_bus", Status: StatusHealthy},
		"disk_space": {Name: "disk_space", Status: StatusHealthy},
	}
	critical := map[string]bool{"database": true, "disk_space": true}

	overall := aggregate(results, critical)
	if overall.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy", overall.Status)
	}
	if overall.Summary != (Summary{Total: 4, Healthy: 3, Unhealthy: 1}) {
		t.Errorf("Summary = %+v", overall.Summary)
	}
}

// TestAggregate_NonCriticalFailureDegrades verifies a non-critical unhealthy
// result degrades the system instead of failing it
func TestAggregate_NonCriticalFailureDegrades(t *testing.T) {
	results := map[string]Result{
		"database": {Name: "database", Status: StatusHealthy},
		"cache":    {Name: "cache", Status: StatusUnhealthy},
	}
	critical := map[string]bool{"database": true}

	overall := aggregate(results, critical)
	if overall.Status != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", overall.Status)
	}
}

// TestAggregate_DegradedResultDegrades verifies a degraded result degrades the
// system even when the probe is critical
func TestAggregate_DegradedResultDegrades(t *testing.T) {
	results := map[string]Result{
		"database": {Name: "database", Status: StatusDegraded},
	}
	critical := map[string]bool{"database": true}

	overall := aggregate(results, critical)
	if overall.Status != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", overall.Status)
	}
}

// TestAggregate_AllHealthy verifies an all-passing result set is healthy
func TestAggregate_AllHealthy(t *testing.T) {
	results := map[string]Result{
		"database": {Name: "database", Status: StatusHealthy},
		"cache":    {Name: "cache", Status: StatusHealthy},
	}

	overall := aggregate(results, map[string]bool{"database": true})
	if overall.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", overall.Status)
	}
	if overall.Summary != (Summary{Total: 2, Healthy: 2}) {
		t.Errorf("Summary = %+v", overall.Summary)
	}
}

// TestAggregate_EmptyIsHealthy verifies an empty snapshot aggregates to
// healthy with zero counts
func TestAggregate_EmptyIsHealthy(t *testing.T) {
	overall := aggregate(map[string]Result{}, nil)
	if overall.Status != StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", overall.Status)
	}
	if overall.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero counts", overall.Summary)
	}
}

// TestOverallHealth_MixedScenario runs three probes through the manager:
// a healthy critical database, a degraded cache, and a critical legacy
// service that errors out. The system must report unhealthy with one result
// in each bucket.
func TestOverallHealth_MixedScenario(t *testing.T) {
	m := New(Options{Timeout: time.Second})
	defer m.Cleanup()

	m.RegisterCheck(Probe{
		Name:     "database",
		Critical: true,
		Check: func(ctx context.Context) (Result, error) {
			return Healthy("pool ok"), nil
		},
	})
	m.RegisterCheck(Probe{
		Name: "cache",
		Check: func(ctx context.Context) (Result, error) {
			return Degraded("evictions elevated"), nil
		},
	})
	m.RegisterCheck(Probe{
		Name:     "legacy",
		Critical: true,
		Check: func(ctx context.Context) (Result, error) {
			return Result{}, errors.New("conn refused")
		},
	})

	m.RunAllChecks(context.Background())

	overall := m.OverallHealth()
	if overall.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want StatusUnhealthy", overall.Status)
	}
	want := Summary{Total: 3, Healthy: 1, Degraded: 1, Unhealthy: 1}
	if overall.Summary != want {
		t.Errorf("Summary = %+v, want %+v", overall.Summary, want)
	}
	if overall.Checks["legacy"].Message != "conn refused" {
		t.Errorf("legacy message = %q", overall.Checks["legacy"].Message)
	}
}

// TestOverallHealth_OnlyNonCriticalFailing verifies the system stays degraded
// when the sole failure is a non-critical probe
func TestOverallHealth_OnlyNonCriticalFailing(t *testing.T) {
	m := New(Options{Timeout: time.Second})
	defer m.Cleanup()

	m.RegisterCheck(Probe{
		Name: "cache",
		Check: func(ctx context.Context) (Result, error) {
			return Result{}, errors.New("dial tcp: connection reset")
		},
	})

	m.RunAllChecks(context.Background())

	if got := m.OverallHealth().Status; got != StatusDegraded {
		t.Errorf("Status = %v, want StatusDegraded", got)
	}
}
