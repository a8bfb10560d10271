package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/scantrack/scantrack-backend/internal/pkg/clientip"
	"github.com/scantrack/scantrack-backend/internal/service"
	"github.com/scantrack/scantrack-backend/internal/session"
)

// eventContext builds the ingestion metadata from a request. The session
// resolver middleware has already run, so the session id is always present.
func (h *Handler) eventContext(r *http.Request) service.EventContext {
	return service.EventContext{
		ClientIP:  clientip.Resolve(r, h.cfg.BehindProxy),
		UserAgent: r.UserAgent(),
		SessionID: session.FromContext(r.Context()),
	}
}

// Landing handles GET /. Loading the page is the scan: the event is recorded
// before the page is served.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ingestService.Ingest(r.Context(), "scan", h.eventContext(r)); err != nil {
		h.log.Error("failed to record scan", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to record scan")
		return
	}
	h.servePage(w, "index.html")
}

type logRequest struct {
	Kind string `json:"kind"`
}

// LogEvent handles POST /log: a client-reported event of any non-empty kind.
func (h *Handler) LogEvent(w http.ResponseWriter, r *http.Request) {
	// A missing or malformed body leaves kind empty, which the service
	// rejects the same way as an explicit empty kind.
	var req logRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	_, err := h.ingestService.Ingest(r.Context(), req.Kind, h.eventContext(r))
	if errors.Is(err, service.ErrKindRequired) {
		respondError(w, http.StatusBadRequest, "kind required")
		return
	}
	if err != nil {
		h.log.Error("failed to record event", "kind", req.Kind, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to record event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
