package users

import "time"

// Status is the account state of a user.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User represents a user account for management.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Default paging applied by List.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ListParams filters and pages the directory.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

// Normalize replaces out-of-range paging with defaults.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// ListResult is one page of users plus the filtered total.
type ListResult struct {
	Users    []User `json:"users"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// CreateInput carries the fields accepted on create.
type CreateInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Status   Status `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Username *string `json:"username,omitempty" validate:"omitnil,min=1"`
	Email    *string `json:"email,omitempty" validate:"omitnil,min=1"`
	Status   *Status `json:"status,omitempty" validate:"omitnil,oneof=active inactive"`
}

// Stats summarises the directory by status.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
