package prodsearch

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
)

// HealthStatus is the engine and cache health seen by the client.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

// Serving reports whether searches can reach the engine.
func (h HealthStatus) Serving() bool {
	return h.Status != string(healthuc.Unhealthy)
}

// Health pings the search engine.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	var err error
	if report.Status == healthuc.Unhealthy {
		err = ErrEngineUnavailable
	}
	c.obs.observe("health", start, err)

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
