package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/admin-console/internal/audit"
	"github.com/odyssey-erp/admin-console/internal/users"
)

const recentActivityLimit = 5

// UserStats exposes directory counts.
type UserStats interface {
	Stats(ctx context.Context) (users.Stats, error)
}

// ActivitySource exposes recent audit entries.
type ActivitySource interface {
	Recent(limit int) []audit.Entry
}

// Service assembles dashboard summaries.
type Service struct {
	users    UserStats
	activity ActivitySource
	cache    *Cache
	figures  Figures
	logger   *slog.Logger
	group    singleflight.Group
	now      func() time.Time
}

// NewService wires the dashboard service. cache may be nil.
func NewService(stats UserStats, activity ActivitySource, cache *Cache, figures Figures, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: stats, activity: activity, cache: cache, figures: figures, logger: logger, now: time.Now}
}

// Summary returns the dashboard payload, served from cache when possible.
// Cache failures degrade to building the summary directly.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	key, err := s.cache.BuildKey(ctx, "dashboard", "summary")
	if err != nil {
		s.logger.Warn("dashboard cache key", slog.Any("error", err))
		return s.build(ctx)
	}
	res := s.group.DoChan(key, func() (any, error) {
		var out Summary
		err := s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
			return s.build(ctx)
		})
		return out, err
	})
	select {
	case <-ctx.Done():
		return Summary{}, ctx.Err()
	case r := <-res:
		if r.Err != nil {
			s.logger.Warn("dashboard cache fetch", slog.Any("error", r.Err))
			return s.build(ctx)
		}
		return r.Val.(Summary), nil
	}
}

func (s *Service) build(ctx context.Context) (Summary, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return Summary{}, err
	}
	var recent []audit.Entry
	if s.activity != nil {
		recent = s.activity.Recent(recentActivityLimit)
	}
	if recent == nil {
		recent = []audit.Entry{}
	}
	return Summary{
		TotalUsers:     stats.Total,
		ActiveUsers:    stats.Active,
		InactiveUsers:  stats.Inactive,
		TodayOrders:    s.figures.TodayOrders,
		TotalRevenue:   s.figures.TotalRevenue,
		RecentActivity: recent,
		GeneratedAt:    s.now().UTC(),
	}, nil
}
