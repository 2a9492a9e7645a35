package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/admin-console/internal/platform/i18n"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	messages, err := i18n.New("zh-Hans")
	require.NoError(t, err)
	svc := NewService(NewRepository(DefaultSeed()), ServiceConfig{})
	r := chi.NewRouter()
	r.Route("/api/users", NewHandler(nil, svc, messages).MountRoutes)
	return r
}

func do[T any](t *testing.T, h http.Handler, method, target, body string) (int, envelope[T]) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr.Code, env
}

func TestHandlerListUsers(t *testing.T) {
	h := newTestRouter(t)

	code, env := do[ListResult](t, h, http.MethodGet, "/api/users?page=1&pageSize=2", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, 5, env.Data.Total)
	assert.Equal(t, []int64{1, 2}, ids(env.Data.Users))

	code, env = do[ListResult](t, h, http.MethodGet, "/api/users?page=abc&pageSize=x&search=QIAN", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Data.Page)
	assert.Equal(t, 10, env.Data.PageSize)
	assert.Equal(t, []int64{5}, ids(env.Data.Users))
}

func TestHandlerListEmptyPageIsArray(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/users?page=7", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Contains(t, rr.Body.String(), `"users":[]`)
}

func TestHandlerGetUser(t *testing.T) {
	h := newTestRouter(t)

	code, env := do[User](t, h, http.MethodGet, "/api/users/3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "王五", env.Data.Username)

	code, miss := do[any](t, h, http.MethodGet, "/api/users/999", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, miss.Success)
	assert.Equal(t, "用户不存在", miss.Message)

	code, bad := do[any](t, h, http.MethodGet, "/api/users/abc", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "用户不存在", bad.Message)

	code, _ = do[any](t, h, http.MethodDelete, "/api/users/abc", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandlerCreateUser(t *testing.T) {
	h := newTestRouter(t)

	code, env := do[User](t, h, http.MethodPost, "/api/users", `{"username":"新用户","email":"new@x.com"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, int64(6), env.Data.ID)
	assert.Equal(t, StatusActive, env.Data.Status)
	assert.Equal(t, "用户创建成功", env.Message)

	code, dup := do[any](t, h, http.MethodPost, "/api/users", `{"username":"other","email":"new@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "用户名或邮箱已存在", dup.Message)

	code, _ = do[any](t, h, http.MethodPost, "/api/users", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, list := do[ListResult](t, h, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 6, list.Data.Total)
}

func TestHandlerUpdateUser(t *testing.T) {
	h := newTestRouter(t)

	code, env := do[User](t, h, http.MethodPut, "/api/users/2", `{"status":"active"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusActive, env.Data.Status)
	assert.Equal(t, "李四", env.Data.Username)
	assert.Equal(t, "用户信息更新成功", env.Message)

	code, conflict := do[any](t, h, http.MethodPut, "/api/users/2", `{"username":"张三"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "用户名或邮箱与其他用户冲突", conflict.Message)

	code, miss := do[any](t, h, http.MethodPut, "/api/users/77", `{"status":"active"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "用户不存在", miss.Message)
}

func TestHandlerDeleteUsers(t *testing.T) {
	h := newTestRouter(t)

	code, env := do[[]User](t, h, http.MethodDelete, "/api/users", `{"ids":[2,4,999]}`)
	require.Equal(t, http.StatusOK, code)
	assert.ElementsMatch(t, []int64{2, 4}, ids(env.Data))
	assert.Equal(t, "成功删除 2 个用户", env.Message)

	code, one := do[User](t, h, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), one.Data.ID)
	assert.Equal(t, "用户删除成功", one.Message)

	code, _ = do[any](t, h, http.MethodDelete, "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandlerSetStatus(t *testing.T) {
	h := newTestRouter(t)

	code, env := do[User](t, h, http.MethodPatch, "/api/users/1/status", `{"status":"inactive"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusInactive, env.Data.Status)
	assert.Equal(t, "用户状态更新成功", env.Message)

	code, _ = do[any](t, h, http.MethodPatch, "/api/users/1/status", `{"status":"gone"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do[any](t, h, http.MethodPatch, "/api/users/404/status", `{"status":"active"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandlerNegotiatesEnglish(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/users/999", nil)
	req.Header.Set("Accept-Language", "en")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"User not found"}`, rr.Body.String())
}

func TestHandlerUnsupportedLanguageUsesDefault(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/users/999", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"用户不存在"}`, rr.Body.String())
}
