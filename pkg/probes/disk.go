package probes

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// DiskConfig configures the disk space probe.
type DiskConfig struct {
	// Path is the mount point to inspect. Default: "/"
	Path string

	// WarningThreshold is the used-space fraction that triggers degraded
	// status. Value should be between 0 and 1. Default: 0.8 (80%)
	WarningThreshold float64

	// CriticalThreshold is the used-space fraction that triggers unhealthy
	// status. Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64

	// Stats overrides the system stat source. Default: gopsutil disk usage.
	// Tests inject a fixed stat here.
	Stats func(ctx context.Context, path string) (*disk.UsageStat, error)
}

// Disk returns the disk space probe.
//
// The probe is critical: a full disk stops writes, so it escalates the
// overall status.
func Disk(cfg DiskConfig) health.Probe {
	warning, critical := normalizeThresholds(cfg.WarningThreshold, cfg.CriticalThreshold)

	path := cfg.Path
	if path == "" {
		path = "/"
	}

	stats := cfg.Stats
	if stats == nil {
		stats = disk.UsageWithContext
	}

	return health.Probe{
		Name:     "disk_space",
		Critical: true,
		Tags:     []string{"infrastructure"},
		Check: func(ctx context.Context) (health.Result, error) {
			usage, err := stats(ctx, path)
			if err != nil {
				return health.Result{}, errors.NewTemporary("disk stats unavailable", err)
			}

			used := usage.UsedPercent / 100
			metadata := map[string]any{
				"path":         path,
				"total_bytes":  usage.Total,
				"used_bytes":   usage.Used,
				"free_bytes":   usage.Free,
				"used_percent": usage.UsedPercent,
			}

			switch {
			case used >= critical:
				return health.Unhealthy(
					fmt.Sprintf("disk usage critical: %.1f%% of %s", usage.UsedPercent, path),
				).WithMetadata(metadata), nil
			case used >= warning:
				return health.Degraded(
					fmt.Sprintf("disk usage high: %.1f%% of %s", usage.UsedPercent, path),
				).WithMetadata(metadata), nil
			default:
				return health.Healthy(
					fmt.Sprintf("disk usage normal: %.1f%% of %s", usage.UsedPercent, path),
				).WithMetadata(metadata), nil
			}
		},
	}
}
