package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
)

type historyListResponse struct {
	Count   int          `json:"count"`
	Records []recordView `json:"records"`
}

type createRecordRequest struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
	Source  string `json:"source,omitempty"` // scan (default) or create
}

type createRecordResponse struct {
	resolvedView
	Saved bool `json:"saved"`
}

// ListHistory returns active records newest first. ?kind= filters by kind
// substring and ?include_disabled=true also lists removed records.
func ListHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		includeDisabled, _ := strconv.ParseBool(q.Get("include_disabled"))

		records := d.MemoryIndex.List(includeDisabled, strings.TrimSpace(q.Get("kind")))
		views := make([]recordView, len(records))
		for i, rec := range records {
			views[i] = toRecordView(rec)
		}

		writeJSON(w, http.StatusOK, historyListResponse{Count: len(views), Records: views})
	}
}

// CreateHistory records a scan or a generated code. The record is only
// kept when the SaveHistory preference is on; the actions are returned either way.
func CreateHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		kind := strings.TrimSpace(req.Kind)
		if kind == "" {
			writeError(w, http.StatusBadRequest, "kind is required")
			return
		}

		source := req.Source
		switch source {
		case "":
			source = domain.SourceScan
		case domain.SourceScan, domain.SourceCreate:
		default:
			writeError(w, http.StatusBadRequest, "source must be scan or create")
			return
		}

		now := d.Now().UTC()
		rec := &domain.Record{
			ID:        uuid.NewString(),
			Kind:      domain.Kind(kind),
			Payload:   req.Payload,
			Source:    source,
			CreatedAt: now,
			UpdatedAt: now,
		}

		saved := d.Settings == nil || d.Settings.Get().SaveHistory
		if saved {
			d.MemoryIndex.AddRecord(rec)
			if d.Store != nil {
				if err := d.Store.SaveRecord(r.Context(), rec); err != nil {
					d.Logger.Warn("failed to save record to redis",
						logger.String("record_id", rec.ID),
						logger.Error(err))
				}
			}
		}

		status := http.StatusOK
		if saved {
			status = http.StatusCreated
		}
		writeJSON(w, status, createRecordResponse{resolvedView: toResolvedView(rec), Saved: saved})
	}
}

// GetHistory returns one active record with its summary.
func GetHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := activeRecord(d, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		writeJSON(w, http.StatusOK, toRecordView(rec))
	}
}

// DeleteHistory removes a record from history. The record is disabled, not
// erased, and the garbage collector purges it later.
func DeleteHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := activeRecord(d, id); !ok {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}

		removed, ok := d.MemoryIndex.RemoveRecord(id, d.Now().UTC())
		if !ok {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}

		if d.Store != nil {
			if err := d.Store.SaveRecord(r.Context(), removed); err != nil {
				d.Logger.Warn("failed to mirror record removal to redis",
					logger.String("record_id", id),
					logger.Error(err))
			}
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func activeRecord(d deps.Deps, id string) (*domain.Record, bool) {
	rec, ok := d.MemoryIndex.GetRecord(id)
	if !ok || rec.Disabled {
		return nil, false
	}
	return rec, true
}
