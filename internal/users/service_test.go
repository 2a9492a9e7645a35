package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/admin-console/internal/audit"
)

type recordingCache struct {
	bumps int
	err   error
}

func (c *recordingCache) Bump(ctx context.Context) error {
	c.bumps++
	return c.err
}

type recordingMetrics struct {
	ops []string
}

func (m *recordingMetrics) ObserveUserMutation(op string) {
	m.ops = append(m.ops, op)
}

func newTestService(t *testing.T, lenient bool) (*Service, *audit.Log, *recordingCache, *recordingMetrics) {
	t.Helper()
	log := audit.NewLog(20)
	cache := &recordingCache{}
	metrics := &recordingMetrics{}
	svc := NewService(NewRepository(DefaultSeed()), ServiceConfig{
		Audit:         log,
		Cache:         cache,
		Metrics:       metrics,
		LenientStatus: lenient,
	})
	return svc, log, cache, metrics
}

func TestServiceCreateValidatesInput(t *testing.T) {
	svc, log, cache, _ := newTestService(t, false)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing username", CreateInput{Email: "a@x.com"}},
		{"missing email", CreateInput{Username: "a"}},
		{"unknown status", CreateInput{Username: "a", Email: "a@x.com", Status: "banned"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, log.Recent(0))
	assert.Zero(t, cache.bumps)
}

func TestServiceCreateRunsSideEffects(t *testing.T) {
	svc, log, cache, metrics := newTestService(t, false)

	user, err := svc.CreateUser(context.Background(), CreateInput{Username: "新用户", Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), user.ID)

	entries := log.Recent(0)
	require.Len(t, entries, 1)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, "user", entries[0].Entity)
	assert.Equal(t, "6", entries[0].EntityID)
	assert.Equal(t, 1, cache.bumps)
	assert.Equal(t, []string{"create"}, metrics.ops)
}

func TestServiceConflictSkipsSideEffects(t *testing.T) {
	svc, log, cache, metrics := newTestService(t, false)

	_, err := svc.CreateUser(context.Background(), CreateInput{Username: "张三", Email: "x@x.com"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, log.Recent(0))
	assert.Zero(t, cache.bumps)
	assert.Empty(t, metrics.ops)
}

func TestServiceUpdateRejectsEmptyFields(t *testing.T) {
	svc, _, _, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.UpdateUser(ctx, 1, UpdateInput{Username: ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateUser(ctx, 1, UpdateInput{Status: ptr(Status("archived"))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	user, err := svc.UpdateUser(ctx, 1, UpdateInput{Status: ptr(StatusInactive)})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, user.Status)
	assert.Equal(t, "张三", user.Username)
}

func TestServiceSetStatusStrict(t *testing.T) {
	svc, _, _, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, 1, "suspended")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SetStatus(ctx, 1, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	user, err := svc.SetStatus(ctx, 1, StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, user.Status)

	_, err = svc.SetStatus(ctx, 99, StatusActive)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceSetStatusLenient(t *testing.T) {
	svc, _, _, _ := newTestService(t, true)

	user, err := svc.SetStatus(context.Background(), 1, "suspended")
	require.NoError(t, err)
	assert.Equal(t, Status("suspended"), user.Status)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 5, Active: 2, Inactive: 2}, stats)
}

func TestServiceDeleteUsersRecordsEachRemoval(t *testing.T) {
	svc, log, cache, metrics := newTestService(t, false)

	removed, err := svc.DeleteUsers(context.Background(), []int64{2, 4, 999})
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Len(t, log.Recent(0), 2)
	assert.Equal(t, 1, cache.bumps)
	assert.Equal(t, []string{"delete_many", "delete_many"}, metrics.ops)
}

func TestServiceDeleteUsersNoMatchSkipsCacheBump(t *testing.T) {
	svc, log, cache, metrics := newTestService(t, false)

	removed, err := svc.DeleteUsers(context.Background(), []int64{998, 999})
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Empty(t, log.Recent(0))
	assert.Zero(t, cache.bumps)
	assert.Empty(t, metrics.ops)
}

func TestServiceSideEffectFailuresDoNotFailMutation(t *testing.T) {
	cache := &recordingCache{err: errors.New("redis down")}
	svc := NewService(NewRepository(DefaultSeed()), ServiceConfig{Cache: cache})

	user, err := svc.DeleteUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, 1, cache.bumps)
}
