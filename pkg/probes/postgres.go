package probes

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// PostgresPool is the subset of *pgxpool.Pool the database probe needs.
// pgxmock satisfies it too, which keeps the probe testable without a server.
type PostgresPool interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres returns the database probe. It verifies connectivity with a ping
// and then executes a simple query round trip, since a pool can hold live
// connections to a server that no longer answers queries.
//
// The probe is critical: a database outage escalates the overall status.
func Postgres(pool PostgresPool) health.Probe {
	return health.Probe{
		Name:     "database",
		Critical: true,
		Tags:     []string{"infrastructure"},
		Check: func(ctx context.Context) (health.Result, error) {
			start := time.Now()

			if err := pool.Ping(ctx); err != nil {
				return health.Result{}, errors.NewTemporary("database ping failed", err)
			}

			var result int
			if err := pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
				return health.Result{}, errors.NewTemporary("database query failed", err)
			}
			if result != 1 {
				return health.Result{}, errors.NewPermanent(
					fmt.Sprintf("database query returned unexpected result: %d", result), nil)
			}

			return health.Healthy("database reachable").WithMetadata(map[string]any{
				"round_trip_ms": time.Since(start).Milliseconds(),
			}), nil
		},
	}
}
