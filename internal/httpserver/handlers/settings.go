package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/settings"
)

// settingsPatch is a partial update, nil fields keep their value.
type settingsPatch struct {
	Theme        *settings.Theme `json:"theme"`
	SearchEngine *string         `json:"search_engine"`
	SaveHistory  *bool           `json:"save_history"`
	Vibrate      *bool           `json:"vibrate"`
	Beep         *bool           `json:"beep"`
}

func (p settingsPatch) apply(s *settings.Settings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.SearchEngine != nil {
		s.SearchEngine = *p.SearchEngine
	}
	if p.SaveHistory != nil {
		s.SaveHistory = *p.SaveHistory
	}
	if p.Vibrate != nil {
		s.Vibrate = *p.Vibrate
	}
	if p.Beep != nil {
		s.Beep = *p.Beep
	}
}

// GetSettings returns the current preferences.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Settings == nil {
			writeError(w, http.StatusServiceUnavailable, "settings unavailable")
			return
		}
		writeJSON(w, http.StatusOK, d.Settings.Get())
	}
}

// UpdateSettings merges the JSON body into the current preferences.
// Fields absent from the body keep their value.
func UpdateSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Settings == nil {
			writeError(w, http.StatusServiceUnavailable, "settings unavailable")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		var patch settingsPatch
		if err := strictUnmarshal(body, &patch); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := d.Settings.Update(r.Context(), patch.apply)
		switch {
		case errors.Is(err, settings.ErrInvalidSettings):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func strictUnmarshal(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid settings body: " + err.Error())
	}
	return nil
}
