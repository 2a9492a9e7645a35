package users

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Repository keeps the user directory in memory. It owns the collection and
// the next-id counter. Every mutation, including its uniqueness check, runs
// under the write lock.
type Repository struct {
	mu     sync.RWMutex
	users  []User
	nextID int64
	now    func() time.Time
}

// NewRepository constructs a repository holding a copy of seed.
func NewRepository(seed []User) *Repository {
	next := int64(len(seed)) + 1
	for _, u := range seed {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	return &Repository{
		users:  slices.Clone(seed),
		nextID: next,
		now:    time.Now,
	}
}

// List filters by search, then pages the matches.
func (r *Repository) List(ctx context.Context, params ListParams) (ListResult, error) {
	params = params.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.users
	if params.Search != "" {
		lower := cases.Lower(language.Und)
		needle := lower.String(params.Search)
		matched = make([]User, 0, len(r.users))
		for _, u := range r.users {
			if strings.Contains(lower.String(u.Username), needle) || strings.Contains(lower.String(u.Email), needle) {
				matched = append(matched, u)
			}
		}
	}

	start, end := pageBounds(len(matched), params.Page, params.PageSize)
	page := make([]User, 0, end-start)
	page = append(page, matched[start:end]...)
	return ListResult{
		Users:    page,
		Total:    len(matched),
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// pageBounds returns the [start, end) window of a 1-based page; pages past
// the end yield an empty window.
func pageBounds(n, page, size int) (int, int) {
	if page-1 > n/size {
		return n, n
	}
	start := (page - 1) * size
	if start > n {
		return n, n
	}
	return start, start + min(size, n-start)
}

// Get returns the user with id.
func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return User{}, ErrNotFound
	}
	return r.users[idx], nil
}

// Create appends a new user after checking username and email uniqueness.
func (r *Repository) Create(ctx context.Context, in CreateInput) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == in.Username || u.Email == in.Email {
			return User{}, ErrConflict
		}
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}
	now := r.now().UTC()
	user := User{
		ID:        r.nextID,
		Username:  in.Username,
		Email:     in.Email,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.users = append(r.users, user)
	return user, nil
}

// Update merges the supplied fields into the user with id.
func (r *Repository) Update(ctx context.Context, id int64, in UpdateInput) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return User{}, ErrNotFound
	}
	if in.Username != nil || in.Email != nil {
		for i, u := range r.users {
			if i == idx {
				continue
			}
			if (in.Username != nil && u.Username == *in.Username) || (in.Email != nil && u.Email == *in.Email) {
				return User{}, ErrConflict
			}
		}
	}

	user := r.users[idx]
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = r.stamp(user.UpdatedAt)
	r.users[idx] = user
	return user, nil
}

// SetStatus overwrites only the status of the user with id.
func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return User{}, ErrNotFound
	}
	user := r.users[idx]
	user.Status = status
	user.UpdatedAt = r.stamp(user.UpdatedAt)
	r.users[idx] = user
	return user, nil
}

// Delete removes the user with id and returns its last state.
func (r *Repository) Delete(ctx context.Context, id int64) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return User{}, ErrNotFound
	}
	user := r.users[idx]
	r.users = slices.Delete(r.users, idx, idx+1)
	return user, nil
}

// DeleteMany removes every user whose id is in ids. Unknown ids are ignored.
// Removed users are returned in collection order.
func (r *Repository) DeleteMany(ctx context.Context, ids []int64) ([]User, error) {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := make([]User, 0, len(wanted))
	kept := make([]User, 0, len(r.users))
	for _, u := range r.users {
		if _, ok := wanted[u.ID]; ok {
			removed = append(removed, u)
			continue
		}
		kept = append(kept, u)
	}
	r.users = kept
	return removed, nil
}

// Stats counts users by status.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{Total: len(r.users)}
	for _, u := range r.users {
		switch u.Status {
		case StatusActive:
			stats.Active++
		case StatusInactive:
			stats.Inactive++
		}
	}
	return stats, nil
}

// indexOf must be called with r.mu held.
func (r *Repository) indexOf(id int64) int {
	return slices.IndexFunc(r.users, func(u User) bool { return u.ID == id })
}

// stamp returns a modification time strictly after prev.
func (r *Repository) stamp(prev time.Time) time.Time {
	now := r.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}
