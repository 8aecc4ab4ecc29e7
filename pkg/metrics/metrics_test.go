package metrics

import (
	"testing"
	"time"

	"github.com/Combine-Capital/cqh/pkg/config"
)

// The registry is package-global, so these tests share one lifecycle:
// they run in source order and Init is called exactly once, disabled,
// to keep the HTTP listener out of the test process.

// TestUninitializedBehavior verifies constructors refuse and recorders no-op
// before Init is called
func TestUninitializedBehavior(t *testing.T) {
	if IsInitialized() {
		t.Skip("metrics already initialized by another test")
	}

	if _, err := NewCounter(CounterOpts{Name: "too_early"}); err == nil {
		t.Error("NewCounter succeeded before Init")
	}
	if Registry() != nil {
		t.Error("Registry non-nil before Init")
	}

	// Recorders must be safe no-ops for hosts that never enable metrics.
	RecordCheck("database", "healthy", 10*time.Millisecond)
	RecordTimeout("database")
	SetProbeCounts(3, 2)
}

// TestInit_Disabled verifies disabled metrics still yield a usable registry
func TestInit_Disabled(t *testing.T) {
	if err := Init(config.MetricsConfig{Enabled: false}); err != nil {
		t.Fatal(err)
	}
	if !IsInitialized() {
		t.Error("IsInitialized = false after Init")
	}
	if Registry() == nil {
		t.Error("Registry = nil after Init")
	}

	// Init is idempotent.
	if err := Init(config.MetricsConfig{Enabled: false}); err != nil {
		t.Fatal(err)
	}
}

// TestNewCounter verifies registration and duplicate rejection
func TestNewCounter(t *testing.T) {
	c, err := NewCounter(CounterOpts{
		Namespace: "cqh",
		Subsystem: "test",
		Name:      "events_total",
		Help:      "test counter",
		Labels:    []string{"kind"},
	})
	if err != nil {
		t.Fatal(err)
	}
	c.Inc("a")
	c.Add(2, "b")

	if _, err := NewCounter(CounterOpts{
		Namespace: "cqh",
		Subsystem: "test",
		Name:      "events_total",
		Labels:    []string{"kind"},
	}); err == nil {
		t.Error("duplicate registration succeeded")
	}
}

// TestNewGaugeAndHistogram verifies the remaining collector kinds register
func TestNewGaugeAndHistogram(t *testing.T) {
	g, err := NewGauge(GaugeOpts{
		Namespace: "cqh",
		Subsystem: "test",
		Name:      "level",
	})
	if err != nil {
		t.Fatal(err)
	}
	g.Set(5)
	g.Inc()
	g.Dec()

	h, err := NewHistogram(HistogramOpts{
		Namespace: "cqh",
		Subsystem: "test",
		Name:      "latency_seconds",
		Labels:    []string{"op"},
		Buckets:   []float64{0.01, 0.1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	h.Observe(0.05, "run")
}

// TestValidateMetricOpts verifies Prometheus naming rules are enforced
func TestValidateMetricOpts(t *testing.T) {
	tests := []struct {
		name    string
		ns, sub string
		metric  string
		labels  []string
		wantErr bool
	}{
		{"valid", "cqh", "health", "checks_total", []string{"probe"}, false},
		{"empty name", "cqh", "health", "", nil, true},
		{"bad name", "cqh", "health", "bad-name", nil, true},
		{"bad namespace", "c qh", "health", "ok", nil, true},
		{"bad label", "cqh", "health", "ok", []string{"2fast"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMetricOpts(tt.ns, tt.sub, tt.metric, tt.labels)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

// TestStandardRecorders verifies the engine's recording helpers work once
// metrics are live
func TestStandardRecorders(t *testing.T) {
	RecordCheck("database", "healthy", 12*time.Millisecond)
	RecordCheck("cache", "unhealthy", 3*time.Millisecond)
	RecordTimeout("legacy")
	SetProbeCounts(4, 4)

	families, err := Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, want := range []string{
		"cqh_health_checks_total",
		"cqh_health_check_duration_seconds",
		"cqh_health_check_timeouts_total",
		"cqh_health_probes_registered",
		"cqh_health_autocheck_timers",
	} {
		if !found[want] {
			t.Errorf("metric %s not gathered", want)
		}
	}
}
