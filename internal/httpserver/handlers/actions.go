package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
	"github.com/MrSnakeDoc/qrhist/internal/effects"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
)

// GrantedCapabilitiesHeader lists the permissions the client already holds.
const GrantedCapabilitiesHeader = "X-Granted-Capabilities"

type actionListResponse struct {
	RecordID string       `json:"record_id"`
	Summary  string       `json:"summary"`
	Rule     string       `json:"rule"`
	Actions  []actionView `json:"actions"`
}

type invokeResponse struct {
	Action       actionView            `json:"action"`
	Instructions []effects.Instruction `json:"instructions"`
}

// ListActions returns the action sheet of a record.
func ListActions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := activeRecord(d, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}

		writeJSON(w, http.StatusOK, actionListResponse{
			RecordID: rec.ID,
			Summary:  domain.SummarizeRecord(rec),
			Rule:     domain.MatchedRule(rec.Kind, rec.Payload),
			Actions:  toActionViews(domain.ResolveActions(rec)),
		})
	}
}

// InvokeAction runs action n of a record and returns the platform
// instructions the client must carry out.
func InvokeAction(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := activeRecord(d, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}

		actions := domain.ResolveActions(rec)
		n, err := strconv.Atoi(chi.URLParam(r, "n"))
		if err != nil || n < 0 || n >= len(actions) {
			writeError(w, http.StatusNotFound, "action not found")
			return
		}
		action := actions[n]

		searchEngine := effects.DefaultSearchEngine
		if d.Settings != nil {
			searchEngine = d.Settings.Get().SearchEngine
		}

		recorder := effects.NewRecorder()
		gate := effects.ParseGrantedCapabilities(r.Header.Get(GrantedCapabilitiesHeader))
		inv := effects.NewInvoker(recorder.Collaborators(gate), searchEngine).WithClock(d.Now)

		if err := inv.Invoke(r.Context(), action.Effect); err != nil {
			status := invokeErrorStatus(err)
			d.Logger.Debug("action invocation failed",
				logger.String("record_id", rec.ID),
				logger.String("label", action.Label),
				logger.Int("status", status),
				logger.Error(err))
			writeError(w, status, err.Error())
			return
		}

		if d.Store != nil {
			if err := d.Store.IncrementActionUsage(r.Context(), string(action.Effect.Type())); err != nil {
				d.Logger.Warn("failed to increment action usage", logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, invokeResponse{
			Action:       toActionViews(actions)[n],
			Instructions: recorder.Instructions(),
		})
	}
}

func invokeErrorStatus(err error) int {
	switch {
	case errors.Is(err, effects.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, effects.ErrFieldNotFound):
		return http.StatusNotFound
	case errors.Is(err, effects.ErrUnsupportedEffect):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
