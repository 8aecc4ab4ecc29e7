package health

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Combine-Capital/cqh/pkg/logging"
	"github.com/Combine-Capital/cqh/pkg/metrics"
	"github.com/Combine-Capital/cqh/pkg/tracing"
)

// executor runs one probe under a timeout race and normalizes every failure
// mode (error return, panic, timeout) into an unhealthy result.
type executor struct {
	store          *store
	defaultTimeout time.Duration
	log            *logging.Logger
}

// outcome carries a probe function's return values across the race channel.
type outcome struct {
	result Result
	err    error
}

// Execute runs the probe's check function against its timeout budget and
// commits the resulting Result to the store before returning it.
//
// The probe goroutine's only side effect is a send into a 1-slot buffered
// channel, and the select below is the only code path that commits to the
// store. A probe that resolves after the timer has fired parks its result in
// the buffer where it is garbage collected; it can never overwrite the
// committed timeout result.
func (e *executor) Execute(ctx context.Context, p Probe) Result {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}

	ctx, span := tracing.StartSpan(ctx, "health.check",
		trace.WithAttributes(tracing.ProbeAttributes(p.Name, p.Critical)...))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resultCh := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- outcome{err: fmt.Errorf("probe panicked: %v", r)}
			}
		}()

		res, err := p.Check(ctx)
		resultCh <- outcome{result: res, err: err}
	}()

	var result Result
	select {
	case out := <-resultCh:
		if out.err != nil {
			result = Unhealthy(out.err.Error())
			tracing.SetSpanError(ctx, out.err)
		} else {
			result = out.result
		}
		result.Duration = time.Since(start)

	case <-ctx.Done():
		result = Unhealthy(timeoutMessage(ctx, timeout))
		result.Duration = time.Since(start)
		metrics.RecordTimeout(p.Name)
		tracing.SetSpanError(ctx, ctx.Err())
	}

	result.Name = p.Name
	result.Timestamp = time.Now()
	if result.Classification == "" {
		result.Classification = p.Classification
	}

	e.store.put(result)

	tracing.SetSpanAttributes(ctx, attribute.String("health.status", result.Status.String()))
	metrics.RecordCheck(p.Name, result.Status.String(), result.Duration)
	e.logResult(p, result)

	return result
}

// timeoutMessage distinguishes a fired timeout budget from caller cancellation.
func timeoutMessage(ctx context.Context, timeout time.Duration) string {
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Sprintf("check timed out after %s", timeout)
	}
	return fmt.Sprintf("check cancelled: %v", ctx.Err())
}

func (e *executor) logResult(p Probe, r Result) {
	switch r.Status {
	case StatusUnhealthy:
		e.log.Error().
			Str(logging.Probe, r.Name).
			Str(logging.Status, r.Status.String()).
			Bool(logging.Critical, p.Critical).
			Int64(logging.Duration, r.Duration.Milliseconds()).
			Msg(r.Message)
	case StatusDegraded:
		e.log.Warn().
			Str(logging.Probe, r.Name).
			Str(logging.Status, r.Status.String()).
			Int64(logging.Duration, r.Duration.Milliseconds()).
			Msg(r.Message)
	default:
		e.log.Debug().
			Str(logging.Probe, r.Name).
			Str(logging.Status, r.Status.String()).
			Int64(logging.Duration, r.Duration.Milliseconds()).
			Msg("check passed")
	}
}
