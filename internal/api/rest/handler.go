package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/scantrack/scantrack-backend/internal/api/middleware"
	"github.com/scantrack/scantrack-backend/internal/config"
	"github.com/scantrack/scantrack-backend/internal/service"
	"github.com/scantrack/scantrack-backend/web"
)

// Handler manages HTTP request handlers
type Handler struct {
	cfg           *config.Config
	ingestService service.IngestService
	statsService  service.StatsService
	exportService service.ExportService
	log           *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(cfg *config.Config, ingest service.IngestService, stats service.StatsService, export service.ExportService, log *slog.Logger) *Handler {
	return &Handler{
		cfg:           cfg,
		ingestService: ingest,
		statsService:  stats,
		exportService: export,
		log:           log,
	}
}

// SetupRoutes configures the public and admin routes.
func (h *Handler) SetupRoutes(router *mux.Router) {
	// Public surface
	router.HandleFunc("/", h.Landing).Methods("GET")
	router.HandleFunc("/log", h.LogEvent).Methods("POST")
	router.HandleFunc("/qr", h.QR).Methods("GET")

	// The embedded tree already roots the assets at static/, matching the
	// URL prefix, so the FS is served as-is.
	router.PathPrefix("/static/").Handler(http.FileServer(http.FS(web.FS)))

	// Admin surface, Basic-gated when credentials are configured
	requireAuth := middleware.BasicAuth(h.cfg)
	router.Handle("/admin", requireAuth(http.HandlerFunc(h.Admin))).Methods("GET")
	router.Handle("/api/stats", requireAuth(http.HandlerFunc(h.Stats))).Methods("GET")
	router.Handle("/api/export.csv", requireAuth(http.HandlerFunc(h.ExportCSV))).Methods("GET")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// servePage writes one embedded HTML page.
func (h *Handler) servePage(w http.ResponseWriter, name string) {
	data, err := web.FS.ReadFile("static/" + name)
	if err != nil {
		h.log.Error("embedded page missing", "page", name, "error", err)
		respondError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
