package probes

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
)

// TestRedis_Reachable verifies a live server pings healthy
func TestRedis_Reachable(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	p := Redis(client)

	r, err := p.Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != health.StatusHealthy {
		t.Errorf("Status = %v, want StatusHealthy", r.Status)
	}
}

// TestRedis_Unreachable verifies a dead server surfaces as a temporary error
func TestRedis_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()
	srv.Close()

	p := Redis(client)

	_, err := p.Check(context.Background())
	if err == nil {
		t.Fatal("expected an error with the server down")
	}
	if !errors.IsTemporary(err) {
		t.Errorf("error = %v, want temporary", err)
	}
}

// TestRedis_Definition verifies the cache probe is non-critical
func TestRedis_Definition(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	p := Redis(client)
	if p.Name != "cache" {
		t.Errorf("Name = %q, want 'cache'", p.Name)
	}
	if p.Critical {
		t.Error("cache probe must not be critical")
	}
}
