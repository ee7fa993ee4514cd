package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool     `json:"ok"`
	RecordsLoaded *int     `json:"records_loaded,omitempty"`
	LastReload    string   `json:"last_reload,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	Impact        string   `json:"impact,omitempty"`
	Error         string   `json:"error,omitempty"`
	Rules         []string `json:"rules,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the history, its import and the Redis mirror.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.Count()

		components := map[string]componentStatus{
			"history": {
				OK:            true,
				RecordsLoaded: &count,
			},
			"import":   importStatus(d),
			"redis":    checkRedis(r.Context(), d),
			"resolver": {OK: true, Mode: "first-match", Rules: domain.RuleNames()},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func importStatus(d deps.Deps) componentStatus {
	if d.ImportFile == "" {
		return componentStatus{OK: true, Mode: "disabled"}
	}

	last := d.MemoryIndex.GetLastReload()
	if last.IsZero() {
		return componentStatus{OK: false, LastReload: "never", Error: "import file not loaded"}
	}
	return componentStatus{OK: true, LastReload: last.Format(time.RFC3339)}
}

func determineMode(components map[string]componentStatus) string {
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "optimal"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     true,
			Mode:   "memory-only",
			Impact: "history-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "history-not-persisted",
			Error:  err.Error(),
		}
	}

	return componentStatus{OK: true, Mode: "mirrored"}
}
