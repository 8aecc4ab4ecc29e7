package probes

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// MemoryConfig configures the system memory probe.
type MemoryConfig struct {
	// WarningThreshold is the used-memory fraction that triggers degraded
	// status. Value should be between 0 and 1. Default: 0.8 (80%)
	WarningThreshold float64

	// CriticalThreshold is the used-memory fraction that triggers unhealthy
	// status. Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64

	// Stats overrides the system stat source. Default: gopsutil VirtualMemory.
	// Tests inject a fixed stat here.
	Stats func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// withDefaults normalizes thresholds the same way for memory and disk.
func normalizeThresholds(warning, critical float64) (float64, float64) {
	if warning <= 0 || warning >= 1 {
		warning = 0.8
	}
	if critical <= 0 || critical >= 1 {
		critical = 0.95
	}
	if critical < warning {
		critical = warning + 0.1
		if critical > 1 {
			critical = 0.99
		}
	}
	return warning, critical
}

// Memory returns the system memory probe.
//
// The probe is non-critical: memory pressure degrades the overall status
// so it surfaces without taking the whole health signal down.
func Memory(cfg MemoryConfig) health.Probe {
	warning, critical := normalizeThresholds(cfg.WarningThreshold, cfg.CriticalThreshold)

	stats := cfg.Stats
	if stats == nil {
		stats = mem.VirtualMemoryWithContext
	}

	return health.Probe{
		Name: "memory",
		Tags: []string{"infrastructure"},
		Check: func(ctx context.Context) (health.Result, error) {
			vm, err := stats(ctx)
			if err != nil {
				return health.Result{}, errors.NewTemporary("memory stats unavailable", err)
			}

			usage := vm.UsedPercent / 100
			metadata := map[string]any{
				"total_bytes":     vm.Total,
				"used_bytes":      vm.Used,
				"available_bytes": vm.Available,
				"used_percent":    vm.UsedPercent,
			}

			switch {
			case usage >= critical:
				return health.Unhealthy(
					fmt.Sprintf("memory usage critical: %.1f%%", vm.UsedPercent),
				).WithMetadata(metadata), nil
			case usage >= warning:
				return health.Degraded(
					fmt.Sprintf("memory usage high: %.1f%%", vm.UsedPercent),
				).WithMetadata(metadata), nil
			default:
				return health.Healthy(
					fmt.Sprintf("memory usage normal: %.1f%%", vm.UsedPercent),
				).WithMetadata(metadata), nil
			}
		},
	}
}
