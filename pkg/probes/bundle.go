package probes

import (
	"github.com/redis/go-redis/v9"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// Sources holds the injected data providers for the infrastructure bundle.
// Memory and disk probes need no injection; the rest register only when a
// source is provided.
type Sources struct {
	// Database backs the critical database probe.
	Database PostgresPool

	// Cache backs the non-critical cache probe.
	Cache redis.UniversalClient

	// EventBus backs the non-critical event_bus probe.
	EventBus NATSConn

	// DiskPath is the mount point for the disk probe. Default: "/"
	DiskPath string

	// Memory and Disk thresholds; zero values use the probe defaults.
	MemoryWarning  float64
	MemoryCritical float64
	DiskWarning    float64
	DiskCritical   float64
}

// RegisterInfrastructure registers the infrastructure probe bundle on the
// manager: memory and disk_space always, database/cache/event_bus when their
// sources are provided. database and disk_space are critical, the rest are
// not.
func RegisterInfrastructure(m *health.Manager, src Sources) error {
	bundle := []health.Probe{
		Memory(MemoryConfig{
			WarningThreshold:  src.MemoryWarning,
			CriticalThreshold: src.MemoryCritical,
		}),
		Disk(DiskConfig{
			Path:              src.DiskPath,
			WarningThreshold:  src.DiskWarning,
			CriticalThreshold: src.DiskCritical,
		}),
	}

	if src.Database != nil {
		bundle = append(bundle, Postgres(src.Database))
	}
	if src.Cache != nil {
		bundle = append(bundle, Redis(src.Cache))
	}
	if src.EventBus != nil {
		bundle = append(bundle, NATS(src.EventBus))
	}

	for _, p := range bundle {
		if err := m.RegisterCheck(p); err != nil {
			return errors.Wrapf(err, "registering %s probe", p.Name)
		}
	}
	return nil
}

// RegisterCompliance registers the three regulatory probes. It refuses to
// register on a manager constructed without compliance enabled.
func RegisterCompliance(m *health.Manager, checks ComplianceChecks) error {
	if !m.ComplianceEnabled() {
		return errors.NewPermanent("compliance probes are disabled by configuration", nil)
	}

	bundle := []health.Probe{
		TradeSurveillance(checks),
		DataRetention(checks),
		AccessReview(checks),
	}

	for _, p := range bundle {
		if err := m.RegisterCheck(p); err != nil {
			return errors.Wrapf(err, "registering %s probe", p.Name)
		}
	}
	return nil
}
