// Package settings holds the console's site-wide settings.
package settings

import (
	"fmt"
	"time"

	"github.com/odyssey-erp/admin-console/internal/platform/httpx"
)

// ErrInvalid indicates settings failed validation.
var ErrInvalid = fmt.Errorf("settings: %w", httpx.ErrValidation)

// Settings are the editable site options.
type Settings struct {
	SiteName            string    `json:"siteName" validate:"required,max=100"`
	SiteDescription     string    `json:"siteDescription" validate:"max=500"`
	EnableNotifications bool      `json:"enableNotifications"`
	EnableMaintenance   bool      `json:"enableMaintenance"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Defaults returns the factory settings.
func Defaults() Settings {
	return Settings{
		SiteName:            "后台管理系统",
		SiteDescription:     "后台管理控制台",
		EnableNotifications: true,
		EnableMaintenance:   false,
	}
}
