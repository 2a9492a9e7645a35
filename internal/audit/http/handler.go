package audithttp

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/admin-console/internal/audit"
	"github.com/odyssey-erp/admin-console/internal/platform/httpx"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Handler exposes the activity log.
type Handler struct {
	log *audit.Log
}

// NewHandler builds the activity handler.
func NewHandler(log *audit.Log) *Handler {
	return &Handler{log: log}
}

// MountRoutes registers the activity endpoint.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/", h.handleRecent)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	httpx.OK(w, h.log.Recent(limit), "")
}
