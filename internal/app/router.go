package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	audithttp "github.com/odyssey-erp/admin-console/internal/audit/http"
	"github.com/odyssey-erp/admin-console/internal/dashboard"
	"github.com/odyssey-erp/admin-console/internal/observability"
	"github.com/odyssey-erp/admin-console/internal/platform/httpx"
	"github.com/odyssey-erp/admin-console/internal/platform/i18n"
	"github.com/odyssey-erp/admin-console/internal/settings"
	"github.com/odyssey-erp/admin-console/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Messages         *i18n.Catalog
	UsersHandler     *users.Handler
	DashboardHandler *dashboard.Handler
	SettingsHandler  *settings.Handler
	Settings         *settings.Service
	AuditHandler     *audithttp.Handler
	Metrics          *observability.Metrics
	// RequestLog enables chi's access log.
	RequestLog bool
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	if params.RequestLog {
		r.Use(chimw.Logger)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if params.UsersHandler != nil {
			r.Route("/users", func(r chi.Router) {
				if params.Settings != nil {
					r.Use(settings.MaintenanceGuard(params.Settings, params.Messages))
				}
				params.UsersHandler.MountRoutes(r)
			})
		}
		if params.DashboardHandler != nil {
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
		if params.SettingsHandler != nil {
			r.Route("/settings", params.SettingsHandler.MountRoutes)
		}
		if params.AuditHandler != nil {
			r.Route("/activity", params.AuditHandler.MountRoutes)
		}
	})

	return r
}
