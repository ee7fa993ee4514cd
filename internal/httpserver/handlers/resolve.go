package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
)

type resolveRequest struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

// Resolve summarizes an ad hoc payload and lists its actions without
// touching history.
func Resolve(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resolveRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rec := &domain.Record{Kind: domain.Kind(req.Kind), Payload: req.Payload, CreatedAt: d.Now().UTC()}
		writeJSON(w, http.StatusOK, toResolvedView(rec))
	}
}
