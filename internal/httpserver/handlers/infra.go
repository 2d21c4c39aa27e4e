package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Workspaces *int   `json:"workspaces,omitempty"`
	Windows    *int   `json:"windows,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	ServiceMode string                     `json:"service_mode"`
	Components  map[string]componentStatus `json:"components"`
}

// Infra reports per-component health: the host adapter, the durable store
// behind Redis, and the optional profile bridge.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		components := map[string]componentStatus{
			"host":   checkHost(r.Context(), d),
			"redis":  checkRedis(d),
			"bridge": checkBridge(r.Context(), d),
		}

		response := infraResponse{
			ServiceMode: determineServiceMode(components),
			Components:  components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineServiceMode(components map[string]componentStatus) string {
	// The host adapter is the one thing nothing works without.
	if hostStatus, exists := components["host"]; exists && !hostStatus.OK {
		return "critical"
	}
	// Redis down means no durable workspaces, grouping still works.
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}
	return "full"
}

func checkHost(ctx context.Context, d deps.Deps) componentStatus {
	windows, err := d.Host.ListWindows(ctx)
	if err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	count := len(windows)
	return componentStatus{OK: true, Windows: &count}
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "persistence-enabled",
		Error:  "none",
	}
}

func checkBridge(ctx context.Context, d deps.Deps) componentStatus {
	if d.Bridge == nil {
		return componentStatus{OK: false, Mode: "disabled", Impact: "profiles-unavailable"}
	}
	if !d.Bridge.Connect(ctx) {
		// Expected state, the bridge is optional.
		return componentStatus{OK: false, Mode: "unreachable", Impact: "profiles-unavailable"}
	}
	return componentStatus{OK: true, Mode: "connected", Impact: "profiles-enabled"}
}
