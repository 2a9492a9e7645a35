package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/admin-console/internal/platform/httpx"
	"github.com/odyssey-erp/admin-console/internal/platform/i18n"
)

// Handler serves the dashboard summary.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	messages *i18n.Catalog
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, messages *i18n.Catalog) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, messages: messages}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("build dashboard summary", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, h.messages.Printer(r).Sprintf(i18n.MsgInternalError))
		return
	}
	httpx.OK(w, summary, "")
}
