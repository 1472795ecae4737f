package utils

import (
	"encoding/json"
	"net/http"
)

// Health is the body of GET /health.
type Health struct {
	Status string            `json:"status"`
	App    string            `json:"app"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h Health) OK() bool { return h.Status == "ok" }

// ResponseHealth writes h with 200, or 503 when a check failed.
func ResponseHealth(w http.ResponseWriter, h Health) {
	code := http.StatusOK
	if !h.OK() {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(h)
}
