package health

// Summary counts results by status across the current result set.
type Summary struct {
	Total     int `json:"total"`
	Healthy   int `json:"healthy"`
	Degraded  int `json:"degraded"`
	Unhealthy int `json:"unhealthy"`
}

// OverallHealth is the aggregate view of every probe's latest result.
// It is computed on demand and never stored.
type OverallHealth struct {
	Status  Status            `json:"status"`
	Summary Summary           `json:"summary"`
	Checks  map[string]Result `json:"checks"`
}

// aggregate computes the overall status from a result snapshot.
//
// The escalation policy, evaluated in order:
//  1. Any unhealthy result from a critical probe -> unhealthy.
//  2. Otherwise any degraded or unhealthy result -> degraded. A non-critical
//     probe failing degrades the system rather than failing it outright, so
//     one optional dependency cannot take down the whole health signal.
//  3. Otherwise -> healthy. An empty snapshot is healthy: no reported failures.
func aggregate(results map[string]Result, critical map[string]bool) OverallHealth {
	overall := OverallHealth{
		Status: StatusHealthy,
		Checks: results,
	}

	hasCriticalFailure := false

	for name, r := range results {
		overall.Summary.Total++
		switch r.Status {
		case StatusUnhealthy:
			overall.Summary.Unhealthy++
			if critical[name] {
				hasCriticalFailure = true
			}
		case StatusDegraded:
			overall.Summary.Degraded++
		default:
			overall.Summary.Healthy++
		}
	}

	switch {
	case hasCriticalFailure:
		overall.Status = StatusUnhealthy
	case overall.Summary.Degraded > 0 || overall.Summary.Unhealthy > 0:
		overall.Status = StatusDegraded
	}

	return overall
}
