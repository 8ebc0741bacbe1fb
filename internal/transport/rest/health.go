package rest

import (
	"context"
	"net/http"
	"time"
)

const checkTimeout = 3 * time.Second

// Check is a named dependency probe.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves /live, /ready and /health.
type HealthHandler struct {
	version string
	checks  []Check
}

// NewHealthHandler creates a HealthHandler reporting the given checks.
func NewHealthHandler(version string, checks ...Check) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.run(r.Context())
	resp.Components = nil
	writeJSON(w, statusFor(ok), resp)
}

// Health is Ready plus per-component latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.run(r.Context())
	resp.Version = h.version
	writeJSON(w, statusFor(ok), resp)
}

func (h *HealthHandler) run(ctx context.Context) (HealthResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Components: make(map[string]CompStatus, len(h.checks))}
	ok := true
	for _, c := range h.checks {
		start := time.Now()
		if err := c.Ping(ctx); err != nil {
			resp.Components[c.Name] = CompStatus{Status: "down"}
			ok = false
			continue
		}
		resp.Components[c.Name] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}
	if !ok {
		resp.Status = "down"
	}
	resp.Timestamp = time.Now()
	return resp, ok
}

func statusFor(ok bool) int {
	if ok {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
