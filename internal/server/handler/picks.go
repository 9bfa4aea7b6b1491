package handler

import (
	"log/slog"
	"net/http"

	"github.com/tkonrad/gridironbot/internal/domain"
)

// PickHandler serves surfaced pick history from the store.
type PickHandler struct {
	store  domain.PickStore
	logger *slog.Logger
}

// NewPickHandler creates a PickHandler.
func NewPickHandler(store domain.PickStore, logger *slog.Logger) *PickHandler {
	return &PickHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "picks")),
	}
}

// ListRecent returns the most recently surfaced picks, newest first.
// GET /api/picks/recent?limit=50
func (h *PickHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "pick store not configured")
		return
	}

	picks, err := h.store.ListRecent(r.Context(), parseLimit(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list recent picks failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list picks")
		return
	}
	if picks == nil {
		picks = []domain.Pick{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"picks": picks,
		"count": len(picks),
	})
}
