// Package dashboard builds the console's overview metrics.
package dashboard

import (
	"time"

	"github.com/odyssey-erp/admin-console/internal/audit"
)

// Summary is the payload of the dashboard page.
type Summary struct {
	TotalUsers     int           `json:"totalUsers"`
	ActiveUsers    int           `json:"activeUsers"`
	InactiveUsers  int           `json:"inactiveUsers"`
	TodayOrders    int64         `json:"todayOrders"`
	TotalRevenue   float64       `json:"totalRevenue"`
	RecentActivity []audit.Entry `json:"recentActivity"`
	GeneratedAt    time.Time     `json:"generatedAt"`
}

// Figures are business totals the console does not compute itself.
type Figures struct {
	TodayOrders  int64
	TotalRevenue float64
}
