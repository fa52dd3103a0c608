package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/fpo-database/backend/internal/model/record"
	"github.com/zhouzirui/fpo-database/backend/pkg/utils"
)

// Handler reports liveness and which snapshot is being served.
type Handler struct {
	records record.Store
}

func New(records record.Store) *Handler {
	return &Handler{records: records}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"snapshot": h.records.Snapshot(),
	})
}
