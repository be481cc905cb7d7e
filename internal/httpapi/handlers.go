package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

const maxBodyBytes = 64 << 10

type errorBody struct {
	Error string `json:"error"`
}

func (rt *Router) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		rt.log.Error("marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (rt *Router) writeError(w http.ResponseWriter, status int, msg string) {
	rt.writeJSON(w, status, errorBody{Error: msg})
}

func readJSON(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return sonic.Unmarshal(data, v)
}

// --- Team catalog ---

func (rt *Router) handleTeamSearch(w http.ResponseWriter, r *http.Request) {
	teams := rt.catalog.Search(r.URL.Query().Get("q"))
	if teams == nil {
		teams = []domain.Team{}
	}
	rt.writeJSON(w, http.StatusOK, teams)
}

// --- Preferences ---

func (rt *Router) handleGetPreferences(w http.ResponseWriter, _ *http.Request) {
	p, ok := rt.gate.Current()
	if !ok {
		rt.writeError(w, http.StatusNotFound, "onboarding not completed")
		return
	}
	rt.writeJSON(w, http.StatusOK, p)
}

func (rt *Router) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var p domain.Preferences
	if err := readJSON(r, &p); err != nil {
		rt.writeError(w, http.StatusBadRequest, "malformed preferences document")
		return
	}
	if err := p.Validate(); err != nil {
		rt.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := rt.gate.Set(r.Context(), &p); err != nil {
		rt.log.Error("save preferences", zap.Error(err))
		rt.writeError(w, http.StatusInternalServerError, "could not save preferences")
		return
	}
	rt.log.Info("preferences saved",
		zap.String("tz", p.Timezone),
		zap.Int("teams", len(p.Teams)),
	)
	rt.writeJSON(w, http.StatusOK, &p)
}

func (rt *Router) handleDeletePreferences(w http.ResponseWriter, r *http.Request) {
	if err := rt.gate.Clear(r.Context()); err != nil {
		rt.log.Error("clear preferences", zap.Error(err))
		rt.writeError(w, http.StatusInternalServerError, "could not clear preferences")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Digest view ---

func (rt *Router) handleDigest(w http.ResponseWriter, _ *http.Request) {
	rt.writeJSON(w, http.StatusOK, rt.view.Snapshot())
}

type generateRequest struct {
	Mode domain.Mode `json:"mode"`
}

// handleGenerate is the user-initiated "Generate now" action. It answers
// 202 once the fetch is underway; outcome is observed via the digest
// snapshot or the event stream, same as a scheduled generation.
func (rt *Router) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := readJSON(r, &req); err != nil || !req.Mode.Valid() {
		rt.writeError(w, http.StatusBadRequest, "mode must be PREVIEW or SUMMARY")
		return
	}
	p, ok := rt.gate.Current()
	if !ok {
		rt.writeError(w, http.StatusConflict, "onboarding not completed")
		return
	}
	if rt.view.IsLoading(req.Mode) {
		rt.writeError(w, http.StatusConflict, "generation already in progress")
		return
	}

	mode := req.Mode
	go func() {
		// Detached from the request context: closing the browser tab must
		// not abort a generation already underway.
		if err := rt.fetcher.Fetch(context.Background(), mode, p); err != nil {
			rt.log.Warn("manual generation failed",
				zap.String("mode", string(mode)),
				zap.Error(err),
			)
		}
	}()
	w.WriteHeader(http.StatusAccepted)
}

func (rt *Router) handleMode(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := readJSON(r, &req); err != nil || !req.Mode.Valid() {
		rt.writeError(w, http.StatusBadRequest, "mode must be PREVIEW or SUMMARY")
		return
	}
	rt.view.SetActiveMode(req.Mode)
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleDismissNotification(w http.ResponseWriter, _ *http.Request) {
	rt.view.DismissNotification()
	w.WriteHeader(http.StatusNoContent)
}
