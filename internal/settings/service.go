package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Service keeps the current settings in memory.
type Service struct {
	mu       sync.RWMutex
	current  Settings
	validate *validator.Validate
	now      func() time.Time
}

// NewService starts from Defaults.
func NewService() *Service {
	return &Service{current: Defaults(), validate: validator.New(), now: time.Now}
}

// Get returns the current settings.
func (s *Service) Get(ctx context.Context) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the settings after validation.
func (s *Service) Update(ctx context.Context, in Settings) (Settings, error) {
	in.SiteName = strings.TrimSpace(in.SiteName)
	in.SiteDescription = strings.TrimSpace(in.SiteDescription)
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Settings{}, fmt.Errorf("%w: %s %s", ErrInvalid, verrs[0].Field(), verrs[0].Tag())
		}
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	in.UpdatedAt = s.now().UTC()
	s.current = in
	return s.current, nil
}

// Reset restores Defaults.
func (s *Service) Reset(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Defaults()
	s.current.UpdatedAt = s.now().UTC()
	return s.current
}

// InMaintenance reports whether maintenance mode is on.
func (s *Service) InMaintenance() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.EnableMaintenance
}
