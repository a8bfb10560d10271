package rest

import "net/http"

// Admin handles GET /admin: the dashboard page.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, "admin.html")
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Compute(r.Context())
	if err != nil {
		h.log.Error("failed to compute stats", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// ExportCSV handles GET /api/export.csv: the full event history.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	csv, err := h.exportService.FormatCSV(r.Context())
	if err != nil {
		h.log.Error("failed to export events", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to export events")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=events.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
