package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/admin-console/internal/audit"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, params ListParams) (ListResult, error)
	Get(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, in CreateInput) (User, error)
	Update(ctx context.Context, id int64, in UpdateInput) (User, error)
	SetStatus(ctx context.Context, id int64, status Status) (User, error)
	Delete(ctx context.Context, id int64) (User, error)
	DeleteMany(ctx context.Context, ids []int64) ([]User, error)
	Stats(ctx context.Context) (Stats, error)
}

// AuditRecorder stores activity entries for successful mutations.
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// CacheInvalidator drops cached views derived from the directory.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// MutationObserver counts successful mutations.
type MutationObserver interface {
	ObserveUserMutation(op string)
}

// ServiceConfig carries optional collaborators and policy switches.
type ServiceConfig struct {
	Logger  *slog.Logger
	Audit   AuditRecorder
	Cache   CacheInvalidator
	Metrics MutationObserver
	// LenientStatus lets SetStatus store values outside active/inactive.
	LenientStatus bool
}

// Service handles user business logic.
type Service struct {
	repo     RepositoryPort
	cfg      ServiceConfig
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Service{repo: repo, cfg: cfg, logger: logger, validate: v}
}

// ListUsers returns one filtered page of users.
func (s *Service) ListUsers(ctx context.Context, params ListParams) (ListResult, error) {
	return s.repo.List(ctx, params)
}

// GetUser returns a single user.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// CreateUser validates and stores a new user.
func (s *Service) CreateUser(ctx context.Context, in CreateInput) (User, error) {
	if err := s.check(in); err != nil {
		return User{}, err
	}
	user, err := s.repo.Create(ctx, in)
	if err != nil {
		return User{}, err
	}
	s.afterMutation(ctx, "create", user.ID, map[string]any{"username": user.Username, "email": user.Email})
	return user, nil
}

// UpdateUser applies a partial update.
func (s *Service) UpdateUser(ctx context.Context, id int64, in UpdateInput) (User, error) {
	if err := s.check(in); err != nil {
		return User{}, err
	}
	user, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return User{}, err
	}
	s.afterMutation(ctx, "update", user.ID, map[string]any{"fields": updatedFields(in)})
	return user, nil
}

// SetStatus changes only the status of a user.
func (s *Service) SetStatus(ctx context.Context, id int64, status Status) (User, error) {
	if status == "" {
		return User{}, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}
	if !s.cfg.LenientStatus && !status.Valid() {
		return User{}, fmt.Errorf("%w: status must be one of active, inactive", ErrInvalidInput)
	}
	user, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return User{}, err
	}
	s.afterMutation(ctx, "set_status", user.ID, map[string]any{"status": string(status)})
	return user, nil
}

// DeleteUser removes a user.
func (s *Service) DeleteUser(ctx context.Context, id int64) (User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return User{}, err
	}
	s.afterMutation(ctx, "delete", user.ID, map[string]any{"username": user.Username})
	return user, nil
}

// DeleteUsers removes every user in ids and returns the removed ones.
func (s *Service) DeleteUsers(ctx context.Context, ids []int64) ([]User, error) {
	removed, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range removed {
		s.recordMutation(ctx, "delete_many", u.ID, map[string]any{"username": u.Username})
	}
	if len(removed) > 0 {
		s.bumpCache(ctx)
	}
	return removed, nil
}

// Stats counts users by status.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
}

// afterMutation runs side effects of a committed change. Failures are logged
// only; the mutation itself has already been applied.
func (s *Service) afterMutation(ctx context.Context, op string, id int64, meta map[string]any) {
	s.recordMutation(ctx, op, id, meta)
	s.bumpCache(ctx)
}

// recordMutation logs, counts and audits one changed user.
func (s *Service) recordMutation(ctx context.Context, op string, id int64, meta map[string]any) {
	s.logger.Info("user mutated", slog.String("op", op), slog.Int64("user_id", id))
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.ObserveUserMutation(op)
	}
	if s.cfg.Audit != nil {
		entry := audit.Entry{Action: op, Entity: "user", EntityID: strconv.FormatInt(id, 10), Meta: meta}
		if err := s.cfg.Audit.Record(ctx, entry); err != nil {
			s.logger.Warn("record audit entry", slog.Any("error", err))
		}
	}
}

func (s *Service) bumpCache(ctx context.Context) {
	if s.cfg.Cache != nil {
		if err := s.cfg.Cache.Bump(ctx); err != nil {
			s.logger.Warn("bump dashboard cache", slog.Any("error", err))
		}
	}
}

func updatedFields(in UpdateInput) []string {
	var fields []string
	if in.Username != nil {
		fields = append(fields, "username")
	}
	if in.Email != nil {
		fields = append(fields, "email")
	}
	if in.Status != nil {
		fields = append(fields, "status")
	}
	return fields
}
