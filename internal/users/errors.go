package users

import (
	"fmt"

	"github.com/odyssey-erp/admin-console/internal/platform/httpx"
)

var (
	// ErrNotFound indicates no user has the requested id.
	ErrNotFound = fmt.Errorf("users: user %w", httpx.ErrNotFound)
	// ErrConflict indicates a username or email clash with another user.
	ErrConflict = fmt.Errorf("users: username or email %w", httpx.ErrDuplicate)
	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = fmt.Errorf("users: %w", httpx.ErrValidation)
)
