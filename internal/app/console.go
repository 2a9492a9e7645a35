package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/admin-console/internal/audit"
	audithttp "github.com/odyssey-erp/admin-console/internal/audit/http"
	"github.com/odyssey-erp/admin-console/internal/dashboard"
	"github.com/odyssey-erp/admin-console/internal/observability"
	"github.com/odyssey-erp/admin-console/internal/platform/i18n"
	"github.com/odyssey-erp/admin-console/internal/settings"
	"github.com/odyssey-erp/admin-console/internal/users"
)

// Console holds the wired services behind the HTTP router.
type Console struct {
	Router    http.Handler
	Users     *users.Service
	Dashboard *dashboard.Service
	Settings  *settings.Service
	Audit     *audit.Log
	Metrics   *observability.Metrics
}

// NewConsole builds every service from cfg and seeds the user directory.
// redisClient may be nil, which disables the dashboard cache.
func NewConsole(cfg *Config, logger *slog.Logger, redisClient *redis.Client) (*Console, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	lang := cfg.AppLanguage
	if lang == "" {
		lang = "zh-Hans"
	}
	messages, err := i18n.New(lang)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	activity := audit.NewLog(cfg.AuditCapacity)

	userCfg := users.ServiceConfig{
		Logger:        logger,
		Audit:         activity,
		Metrics:       metrics,
		LenientStatus: cfg.UsersLenientStatus,
	}
	var summaryCache *dashboard.Cache
	if redisClient != nil {
		ttl := cfg.DashboardCacheTTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		summaryCache = dashboard.NewCache(redisClient, ttl)
		userCfg.Cache = summaryCache
	}

	userService := users.NewService(users.NewRepository(users.DefaultSeed()), userCfg)
	metrics.Registerer().MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "console_directory_users",
		Help: "Users currently held in the directory.",
	}, func() float64 {
		stats, err := userService.Stats(context.Background())
		if err != nil {
			return 0
		}
		return float64(stats.Total)
	}))

	dashboardService := dashboard.NewService(userService, activity, summaryCache, dashboard.Figures{
		TodayOrders:  cfg.DashboardTodayOrders,
		TotalRevenue: cfg.DashboardTotalRevenue,
	}, logger)
	settingsService := settings.NewService()

	router := NewRouter(RouterParams{
		Logger:           logger,
		Config:           cfg,
		Messages:         messages,
		UsersHandler:     users.NewHandler(logger, userService, messages),
		DashboardHandler: dashboard.NewHandler(logger, dashboardService, messages),
		SettingsHandler:  settings.NewHandler(logger, settingsService, messages),
		Settings:         settingsService,
		AuditHandler:     audithttp.NewHandler(activity),
		Metrics:          metrics,
		RequestLog:       !cfg.IsProduction() && !InTestMode(),
	})

	return &Console{
		Router:    router,
		Users:     userService,
		Dashboard: dashboardService,
		Settings:  settingsService,
		Audit:     activity,
		Metrics:   metrics,
	}, nil
}
