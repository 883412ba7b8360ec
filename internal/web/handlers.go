package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/ops"
	"github.com/hpungsan/jot/internal/session"
)

// Handlers contains HTTP route handlers for the facts API and web UI.
type Handlers struct {
	mgr      *session.Manager
	cfg      *config.Config
	logger   *slog.Logger
	renderer *Renderer
}

// createFactRequest is the JSON body for POST /facts.
type createFactRequest struct {
	Session string `json:"session,omitempty"`
	ID      string `json:"id,omitempty"`
	Text    string `json:"text"`
}

// HandleIndex handles GET / — the fact list page.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	sess := r.URL.Query().Get("session")
	result := ops.List(h.mgr, ops.ListInput{Session: sess})

	if sess == "" {
		sess = session.DefaultSession
	}

	h.renderer.renderPage(w, r, "facts", FactsPageData{
		PageData: PageData{
			Title:   "Facts",
			Version: h.renderer.version,
			Nav:     "facts",
		},
		Session: sess,
		Facts:   result.Facts,
		Count:   result.Count,
	})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleListFacts handles GET /facts — list saved facts in insertion order.
func (h *Handlers) HandleListFacts(w http.ResponseWriter, r *http.Request) {
	result := ops.List(h.mgr, ops.ListInput{Session: r.URL.Query().Get("session")})
	renderJSON(w, http.StatusOK, result)
}

// HandleCreateFact handles POST /facts — save a new fact.
func (h *Handlers) HandleCreateFact(w http.ResponseWriter, r *http.Request) {
	var req createFactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.apiError(w, errors.NewInvalidRequest("invalid JSON body"))
		return
	}

	sess := req.Session
	if sess == "" {
		sess = r.URL.Query().Get("session")
	}

	result, err := ops.Save(r.Context(), h.mgr, h.cfg, ops.SaveInput{
		Session: sess,
		ID:      req.ID,
		Text:    req.Text,
	})
	if err != nil {
		h.apiError(w, err)
		return
	}

	renderJSON(w, http.StatusCreated, result)
}

// HandleGetFact handles GET /facts/{id}.
func (h *Handlers) HandleGetFact(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Fetch(h.mgr, ops.FetchInput{
		Session: r.URL.Query().Get("session"),
		ID:      r.PathValue("id"),
	})
	if err != nil {
		h.apiError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleDiscardFact handles POST /facts/{id}/discard and DELETE /facts/{id}.
// Discarding an unknown id is a 404; the collection is untouched either way.
func (h *Handlers) HandleDiscardFact(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Discard(r.Context(), h.mgr, ops.DiscardInput{
		Session: r.URL.Query().Get("session"),
		ID:      r.PathValue("id"),
	})
	if err != nil {
		h.apiError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleRefresh handles POST /facts/refresh — reconcile from the archive.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Refresh(r.Context(), h.mgr, ops.RefreshInput{
		Session: r.URL.Query().Get("session"),
	})
	if err != nil {
		h.apiError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleListSessions handles GET /sessions — cursor-paginated session listing.
func (h *Handlers) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	result, err := ops.SessionList(h.mgr, ops.SessionListInput{
		Limit: parseIntParam(r, "limit", 0),
		After: r.URL.Query().Get("after"),
		Order: r.URL.Query().Get("order"),
	})
	if err != nil {
		h.apiError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleCreateSession handles POST /sessions.
func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusCreated, ops.SessionCreate(h.mgr))
}

// HandleDropSession handles DELETE /sessions/{id}.
func (h *Handlers) HandleDropSession(w http.ResponseWriter, r *http.Request) {
	result, err := ops.SessionDrop(r.Context(), h.mgr, ops.SessionDropInput{
		ID: r.PathValue("id"),
	})
	if err != nil {
		h.apiError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// apiError writes a JSON error envelope with the error's HTTP status.
// Internal error details never reach the client.
func (h *Handlers) apiError(w http.ResponseWriter, err error) {
	jErr := errors.AsJotError(err)
	if jErr.Code == errors.ErrInternal {
		h.logger.Error("request failed", "error", err)
	}

	errorObj := map[string]any{
		"code":    string(jErr.Code),
		"message": jErr.Message,
		"status":  jErr.Status,
	}
	if jErr.Code != errors.ErrInternal && jErr.Details != nil {
		errorObj["details"] = jErr.Details
	}

	renderJSON(w, jErr.Status, map[string]any{"error": errorObj})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
