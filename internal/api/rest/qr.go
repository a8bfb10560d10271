package rest

import (
	"net/http"
	"strconv"

	"github.com/scantrack/scantrack-backend/internal/pkg/qr"
)

const (
	defaultQRSize = 200
	minQRSize     = 64
	maxQRSize     = 1024
)

// QR handles GET /qr: a PNG QR code for the given text (default: the
// configured public URL) at the given pixel size.
func (h *Handler) QR(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		text = h.cfg.PublicURL
	}

	size := defaultQRSize
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	data, err := qr.EncodePNG(text, size)
	if err != nil {
		h.log.Error("failed to generate QR code", "error", err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
