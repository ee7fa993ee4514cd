package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
)

type statsResponse struct {
	Records     int              `json:"records"`
	ActionUsage map[string]int64 `json:"action_usage"`
	UsageSource string           `json:"usage_source"`
}

// Stats returns the record count and the per effect type usage counters.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := statsResponse{
			Records:     d.MemoryIndex.Count(),
			ActionUsage: map[string]int64{},
			UsageSource: "unavailable",
		}

		if d.Store != nil {
			usage, err := d.Store.GetUsageStats(r.Context())
			if err != nil {
				d.Logger.Warn("failed to read usage stats", logger.Error(err))
			} else {
				resp.ActionUsage = usage
				resp.UsageSource = "redis"
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
