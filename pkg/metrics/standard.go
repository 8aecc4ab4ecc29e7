package metrics

import (
	"sync"
	"time"
)

var (
	// Standard health check metrics
	checkCount      *Counter
	checkDuration   *Histogram
	checkTimeouts   *Counter
	probesGauge     *Gauge
	autoCheckTimers *Gauge

	// Ensure standard metrics are initialized only once
	standardMetricsOnce sync.Once
)

// InitStandardMetrics initializes the standard health check metrics.
// This function is called automatically on first use by the engine, but can
// be called explicitly to ensure metrics are registered before use.
// It is safe to call multiple times - subsequent calls are no-ops.
func InitStandardMetrics(namespace string) error {
	var initErr error

	standardMetricsOnce.Do(func() {
		checkCount, initErr = NewCounter(CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "checks_total",
			Help:      "Total number of health check executions",
			Labels:    []string{"probe", "status"},
		})
		if initErr != nil {
			return
		}

		checkDuration, initErr = NewHistogram(HistogramOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "check_duration_seconds",
			Help:      "Health check execution duration in seconds",
			Labels:    []string{"probe"},
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		})
		if initErr != nil {
			return
		}

		checkTimeouts, initErr = NewCounter(CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "check_timeouts_total",
			Help:      "Total number of health check executions that hit the timeout budget",
			Labels:    []string{"probe"},
		})
		if initErr != nil {
			return
		}

		probesGauge, initErr = NewGauge(GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "probes_registered",
			Help:      "Number of currently registered health probes",
		})
		if initErr != nil {
			return
		}

		autoCheckTimers, initErr = NewGauge(GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "autocheck_timers",
			Help:      "Number of active periodic check timers",
		})
	})

	return initErr
}

// RecordCheck records a completed health check execution.
// It is a no-op when metrics have not been initialized.
func RecordCheck(probe, status string, duration time.Duration) {
	if !IsInitialized() {
		return
	}
	if err := InitStandardMetrics("cqh"); err != nil {
		return
	}

	checkCount.Inc(probe, status)
	checkDuration.Observe(duration.Seconds(), probe)
}

// RecordTimeout records a health check execution that was cut off by its
// timeout budget. It is a no-op when metrics have not been initialized.
func RecordTimeout(probe string) {
	if !IsInitialized() {
		return
	}
	if err := InitStandardMetrics("cqh"); err != nil {
		return
	}

	checkTimeouts.Inc(probe)
}

// SetProbeCounts records the current number of registered probes and active
// periodic timers. It is a no-op when metrics have not been initialized.
func SetProbeCounts(registered, timers int) {
	if !IsInitialized() {
		return
	}
	if err := InitStandardMetrics("cqh"); err != nil {
		return
	}

	probesGauge.Set(float64(registered))
	autoCheckTimers.Set(float64(timers))
}
