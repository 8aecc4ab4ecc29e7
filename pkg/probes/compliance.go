package probes

import (
	"context"
	"fmt"

	"github.com/Combine-Capital/cqh/pkg/health"
	"github.com/Combine-Capital/cqh/pkg/logging"
)

// Classification applied to every compliance probe result.
const complianceClassification = "confidential"

// Condition is one named boolean sub-condition of a regulatory probe.
// A nil Eval is treated as passing, so a bundle can be registered before
// every real check is wired without reporting failures it never evaluated.
type Condition struct {
	Name string
	Eval func(ctx context.Context) bool
}

// ComplianceChecks holds the injectable condition sets for the regulatory
// probes and an optional logger for audit records.
type ComplianceChecks struct {
	// TradeSurveillance conditions back the critical trade_surveillance probe.
	TradeSurveillance []Condition

	// DataRetention conditions back the critical data_retention probe.
	DataRetention []Condition

	// AccessReview conditions back the advisory access_review probe.
	AccessReview []Condition

	// Logger, when set, receives an audit record for every evaluation.
	Logger *logging.Logger
}

// TradeSurveillance returns the trade surveillance probe (critical).
func TradeSurveillance(checks ComplianceChecks) health.Probe {
	return complianceProbe("trade_surveillance", true, checks.TradeSurveillance, checks.Logger)
}

// DataRetention returns the data retention probe (critical).
func DataRetention(checks ComplianceChecks) health.Probe {
	return complianceProbe("data_retention", true, checks.DataRetention, checks.Logger)
}

// AccessReview returns the access review probe. It is advisory: its failure
// degrades the overall status but never fails it.
func AccessReview(checks ComplianceChecks) health.Probe {
	return complianceProbe("access_review", false, checks.AccessReview, checks.Logger)
}

// complianceProbe builds a regulatory probe over a condition checklist.
// Status follows the count of failing conditions: none pass-through healthy,
// exactly one degraded, two or more unhealthy.
func complianceProbe(name string, critical bool, conditions []Condition, log *logging.Logger) health.Probe {
	tags := []string{"compliance"}
	if !critical {
		tags = append(tags, "advisory")
	}

	return health.Probe{
		Name:           name,
		Critical:       critical,
		Tags:           tags,
		Classification: complianceClassification,
		Check: func(ctx context.Context) (health.Result, error) {
			var failed []string
			for _, c := range conditions {
				if c.Eval != nil && !c.Eval(ctx) {
					failed = append(failed, c.Name)
				}
			}

			metadata := map[string]any{
				"conditions_total":  len(conditions),
				"conditions_failed": failed,
			}

			var result health.Result
			switch len(failed) {
			case 0:
				result = health.Healthy(
					fmt.Sprintf("all %d conditions satisfied", len(conditions)))
			case 1:
				result = health.Degraded(
					fmt.Sprintf("condition failing: %s", failed[0]))
			default:
				result = health.Unhealthy(
					fmt.Sprintf("%d of %d conditions failing", len(failed), len(conditions)))
			}
			result = result.WithMetadata(metadata)

			if log != nil {
				log.Audit().
					Str(logging.Probe, name).
					Str(logging.Status, result.Status.String()).
					Str(logging.Classification, complianceClassification).
					Int("conditions_total", len(conditions)).
					Strs("conditions_failed", failed).
					Msg("compliance check evaluated")
			}

			return result, nil
		},
	}
}
