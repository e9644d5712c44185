package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/citystats/citystats-service/internal/logger"
	"github.com/citystats/citystats-service/internal/transport/http/response"
)

// ReadinessChecker checks if a dependency is ready.
type ReadinessChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// PingChecker adapts a Ping method into a ReadinessChecker.
type PingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func NewPingChecker(name string, ping func(ctx context.Context) error) *PingChecker {
	return &PingChecker{name: name, ping: ping}
}

func (c *PingChecker) Name() string                    { return c.name }
func (c *PingChecker) Check(ctx context.Context) error { return c.ping(ctx) }

type HealthHandler struct {
	checkers []ReadinessChecker
	timeout  time.Duration
}

func NewHealthHandler(timeout time.Duration, checkers ...ReadinessChecker) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{checkers: checkers, timeout: timeout}
}

// Healthz is liveness only.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
}

type checkResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readiness struct {
	Status string        `json:"status"`
	Checks []checkResult `json:"checks"`
}

// Readyz runs every checker concurrently and answers 503 if any fails.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results := make([]checkResult, len(h.checkers))
	var wg sync.WaitGroup
	for i, c := range h.checkers {
		wg.Add(1)
		go func(i int, c ReadinessChecker) {
			defer wg.Done()
			results[i] = checkResult{Name: c.Name(), Status: "healthy"}
			if err := c.Check(ctx); err != nil {
				results[i].Status = "unhealthy"
				results[i].Error = err.Error()
			}
		}(i, c)
	}
	wg.Wait()

	body := readiness{Status: "ready", Checks: results}
	status := http.StatusOK
	for _, res := range results {
		if res.Error != "" {
			body.Status = "not_ready"
			status = http.StatusServiceUnavailable
			logger.WithCtx(r.Context()).Warn().
				Str("dependency", res.Name).
				Str("error", res.Error).
				Msg("readiness check failed")
		}
	}

	response.Data(w, status, body)
}
