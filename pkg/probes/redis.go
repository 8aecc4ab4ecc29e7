package probes

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// Redis returns the cache probe. It issues a PING against the client.
//
// The probe is non-critical: a cache outage degrades the overall status
// instead of failing it, since most services can serve without their cache.
func Redis(client redis.UniversalClient) health.Probe {
	return health.Probe{
		Name: "cache",
		Tags: []string{"infrastructure"},
		Check: func(ctx context.Context) (health.Result, error) {
			if err := client.Ping(ctx).Err(); err != nil {
				return health.Result{}, errors.NewTemporary("cache ping failed", err)
			}
			return health.Healthy("cache reachable"), nil
		},
	}
}
