package probes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Combine-Capital/cqh/pkg/errors"
	"github.com/Combine-Capital/cqh/pkg/health"
	"github.com/Combine-Capital/cqh/pkg/retry"
)

// HTTPConfig configures an HTTP endpoint probe.
type HTTPConfig struct {
	// URL is the endpoint to request. Required.
	URL string

	// Method is the HTTP method. Default: GET
	Method string

	// Client is the HTTP client to use. Default: http.DefaultClient
	Client *http.Client

	// MaxAttempts retries transient failures (network errors and 5xx
	// responses) with exponential backoff before declaring the endpoint
	// unhealthy. Default: 1 (no retries)
	MaxAttempts uint

	// Critical marks the probed endpoint as one whose outage escalates the
	// overall status.
	Critical bool
}

// HTTP returns a probe for an HTTP endpoint registered under the given name.
// A 2xx response is healthy; anything else, after the configured retries,
// is reported through the engine's normal error normalization.
func HTTP(name string, cfg HTTPConfig) health.Probe {
	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	return health.Probe{
		Name:     name,
		Critical: cfg.Critical,
		Tags:     []string{"infrastructure", "http"},
		Check: func(ctx context.Context) (health.Result, error) {
			statusCode, err := retry.DoWithData(ctx, retry.Config{
				MaxAttempts: attempts,
				Policy:      retry.PolicyTemporary,
			}, func() (int, error) {
				return request(ctx, client, method, cfg.URL)
			})
			if err != nil {
				return health.Result{}, err
			}

			return health.Healthy(fmt.Sprintf("endpoint responded %d", statusCode)).
				WithMetadata(map[string]any{
					"url":         cfg.URL,
					"status_code": statusCode,
				}), nil
		},
	}
}

// request performs one attempt and classifies its failure for retry policy:
// network errors and 5xx responses are temporary, other statuses permanent.
func request(ctx context.Context, client *http.Client, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, errors.NewPermanent("invalid probe request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.NewTemporary("endpoint unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp.StatusCode, nil
	case resp.StatusCode >= 500:
		return 0, errors.NewTemporary(
			fmt.Sprintf("endpoint returned %d", resp.StatusCode), nil)
	default:
		return 0, errors.NewPermanent(
			fmt.Sprintf("endpoint returned %d", resp.StatusCode), nil)
	}
}
