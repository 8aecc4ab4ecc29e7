package probes

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// NATSConn is the subset of *nats.Conn the event bus probe needs.
type NATSConn interface {
	Status() nats.Status
	RTT() (time.Duration, error)
}

// NATS returns the event bus probe. It checks the connection status and then
// measures a round trip to verify the server is actually responding.
//
// The probe is non-critical by default; pass through Sources to change that
// if the host cannot operate without its event bus.
func NATS(conn NATSConn) health.Probe {
	return health.Probe{
		Name: "event_bus",
		Tags: []string{"infrastructure"},
		Check: func(ctx context.Context) (health.Result, error) {
			status := conn.Status()
			if status != nats.CONNECTED {
				return health.Result{}, errors.NewTemporary(
					fmt.Sprintf("event bus not connected: status=%v", status), nil)
			}

			rtt, err := conn.RTT()
			if err != nil {
				return health.Result{}, errors.NewTemporary("event bus round trip failed", err)
			}

			return health.Healthy("event bus reachable").WithMetadata(map[string]any{
				"rtt_ms": rtt.Milliseconds(),
			}), nil
		},
	}
}
