package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
	"github.com/MrSnakeDoc/qrhist/internal/utils"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload triggers a manual reload of the history import file.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeJSON(w, http.StatusNotFound, reloadResponse{Message: "history import is disabled"})
			return
		}

		ip := utils.ClientIP(r, d.TrustProxy)
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual import reload triggered via endpoint", logger.String("remote_ip", ip))
			writeJSON(w, http.StatusAccepted, reloadResponse{Triggered: true, Message: "reload triggered"})
		default:
			d.Logger.Warn("import reload already pending", logger.String("remote_ip", ip))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{Message: "reload already in progress, please wait"})
		}
	}
}
