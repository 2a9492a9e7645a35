package users

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/admin-console/internal/platform/httpx"
	"github.com/odyssey-erp/admin-console/internal/platform/i18n"
)

// Handler serves the /api/users resource.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	messages *i18n.Catalog
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, messages *i18n.Catalog) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, messages: messages}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Post("/", h.createUser)
	r.Delete("/", h.deleteUsers)
	r.Get("/{id}", h.getUser)
	r.Put("/{id}", h.updateUser)
	r.Delete("/{id}", h.deleteUser)
	r.Patch("/{id}/status", h.setStatus)
}

type deleteUsersRequest struct {
	IDs []int64 `json:"ids"`
}

type setStatusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	result, err := h.service.ListUsers(r.Context(), ListParams{Page: page, PageSize: pageSize, Search: q.Get("search")})
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	httpx.OK(w, result, "")
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	httpx.OK(w, user, "")
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, ErrInvalidInput, "")
		return
	}
	user, err := h.service.CreateUser(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, i18n.MsgUserExists)
		return
	}
	httpx.OK(w, user, h.messages.Printer(r).Sprintf(i18n.MsgUserCreated))
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, ErrInvalidInput, "")
		return
	}
	user, err := h.service.UpdateUser(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err, i18n.MsgUserConflict)
		return
	}
	httpx.OK(w, user, h.messages.Printer(r).Sprintf(i18n.MsgUserUpdated))
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	user, err := h.service.DeleteUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	httpx.OK(w, user, h.messages.Printer(r).Sprintf(i18n.MsgUserDeleted))
}

func (h *Handler) deleteUsers(w http.ResponseWriter, r *http.Request) {
	var req deleteUsersRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, ErrInvalidInput, "")
		return
	}
	removed, err := h.service.DeleteUsers(r.Context(), req.IDs)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	httpx.OK(w, removed, h.messages.Printer(r).Sprintf(i18n.MsgUsersDeleted, len(removed)))
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req setStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, ErrInvalidInput, "")
		return
	}
	user, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	httpx.OK(w, user, h.messages.Printer(r).Sprintf(i18n.MsgUserStatusUpdated))
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// An unparseable id cannot address any record.
		h.fail(w, r, ErrNotFound, "")
		return 0, false
	}
	return id, true
}

// fail writes a failed envelope. conflictMsg is the message key used when
// err is a uniqueness conflict.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, conflictMsg string) {
	key := i18n.MsgInternalError
	switch {
	case errors.Is(err, ErrNotFound):
		key = i18n.MsgUserNotFound
	case errors.Is(err, ErrConflict):
		key = conflictMsg
		if key == "" {
			key = i18n.MsgUserExists
		}
	case errors.Is(err, ErrInvalidInput):
		key = i18n.MsgInvalidRequest
		h.logger.Debug("rejected user request", slog.String("path", r.URL.Path), slog.Any("error", err))
	default:
		h.logger.Error("user request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	httpx.Fail(w, httpx.StatusFor(err), h.messages.Printer(r).Sprintf(key))
}
