// Package logging provides structured logging with zerolog for the CQH health engine.
// It supports configurable log levels, output formats (JSON/console), and consistent
// field naming for probe execution events and audit records.
//
// Example usage:
//
//	cfg := config.LogConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//	logger := logging.New(cfg)
//	logger.Info().Str(logging.Probe, "database").Msg("probe registered")
package logging

// Standard field names for structured logging.
// These constants ensure consistent field naming across all services.
const (
	// ServiceName is the field name for the service generating the log.
	ServiceName = "service_name"

	// Component is the field name for the component/package generating the log.
	Component = "component"

	// Probe is the field name for the health probe a log record concerns.
	Probe = "probe"

	// Status is the field name for a probe result status.
	Status = "status"

	// Duration is the field name for probe execution duration.
	Duration = "duration_ms"

	// Critical is the field name marking a probe whose failure escalates
	// the overall status.
	Critical = "critical"

	// Classification is the field name for the opaque sensitivity label
	// carried on a result.
	Classification = "classification"

	// Event is the field name distinguishing record kinds (e.g. audit).
	Event = "event"

	// Error is the field name for error information.
	Error = "error"
)
