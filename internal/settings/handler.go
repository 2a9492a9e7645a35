package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/admin-console/internal/platform/httpx"
	"github.com/odyssey-erp/admin-console/internal/platform/i18n"
)

// Handler serves the settings form endpoints.
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

// MountRoutes registers settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Post("/reset", h.reset)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, h.service.Get(r.Context()), "")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	p := h.messages.Printer(r)
	var in Settings
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, p.Sprintf(i18n.MsgInvalidRequest))
		return
	}
	saved, err := h.service.Update(r.Context(), in)
	if err != nil {
		if !errors.Is(err, ErrInvalid) {
			h.logger.Error("update settings", slog.Any("error", err))
		}
		httpx.Fail(w, httpx.StatusFor(err), p.Sprintf(i18n.MsgInvalidRequest))
		return
	}
	h.logger.Info("settings saved", slog.Bool("maintenance", saved.EnableMaintenance))
	httpx.OK(w, saved, p.Sprintf(i18n.MsgSettingsSaved))
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, h.service.Reset(r.Context()), h.messages.Printer(r).Sprintf(i18n.MsgSettingsReset))
}

// MaintenanceGuard rejects mutating requests with 503 while maintenance
// mode is enabled. Safe methods pass through.
func MaintenanceGuard(service *Service, messages *i18n.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if service != nil && service.InMaintenance() {
				httpx.Fail(w, http.StatusServiceUnavailable, messages.Printer(r).Sprintf(i18n.MsgMaintenance))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
