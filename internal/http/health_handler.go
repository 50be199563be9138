package http

import (
	"net/http"
)

func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Supermarket POS Backend - Enhanced Version"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "service": "pos-service"}

	if h.db != nil {
		ctx, cancel := h.withTimeout(r.Context())
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.WithError(err).Warn("database ping failed")
			resp["status"] = "unavailable"
			resp["database"] = "down"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
