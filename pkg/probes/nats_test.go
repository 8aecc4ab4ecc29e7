package probes

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// fakeNATSConn implements NATSConn without a server.
type fakeNATSConn struct {
	status nats.Status
	rtt    time.Duration
	rttErr error
}

func (f *fakeNATSConn) Status() nats.Status         { return f.status }
func (f *fakeNATSConn) RTT() (time.Duration, error) { return f.rtt, f.rttErr }

// TestNATS_Connected verifies a connected bus with a measurable round trip is healthy
func TestNATS_Connected(t *testing.T) {
	p := NATS(&fakeNATSConn{status: nats.CONNECTED, rtt: 3 * time.Millisecond})

	r, err := p.Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != health.StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", r.Status)
	}
	if r.Metadata["rtt_ms"] != int64(3) {
		t.Errorf("Metadata = %+v", r.Metadata)
	}
}

// TestNATS_Disconnected verifies a non-connected status surfaces as temporary
func TestNATS_Disconnected(t *testing.T) {
	for _, status := range []nats.Status{nats.DISCONNECTED, nats.RECONNECTING, nats.CLOSED} {
		p := NATS(&fakeNATSConn{status: status})

		_, err := p.Check(context.Background())
		if !errors.IsTemporary(err) {
			t.Errorf("status %v: error = %v, want temporary", status, err)
		}
	}
}

// TestNATS_RTTFails verifies a stalled round trip surfaces as temporary
func TestNATS_RTTFails(t *testing.T) {
	p := NATS(&fakeNATSConn{
		status: nats.CONNECTED,
		rttErr: errors.New("flush timeout"),
	})

	_, err := p.Check(context.Background())
	if !errors.IsTemporary(err) {
		t.Errorf("error = %v, want temporary", err)
	}
}

// TestNATS_Definition verifies the event bus probe is non-critical
func TestNATS_Definition(t *testing.T) {
	p := NATS(&fakeNATSConn{status: nats.CONNECTED})
	if p.Name != "event_bus" {
		t.Errorf("Name = %q, want 'event_bus'", p.Name)
	}
	if p.Critical {
		t.Error("event bus probe must not be critical")
	}
}
