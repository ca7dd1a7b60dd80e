package service

import (
	"context"
	"fmt"
	"time"

	"worktrack/internal/config"
	"worktrack/internal/model"
	"worktrack/internal/repository"
	"worktrack/pkg/util"

	"go.uber.org/zap"
)

// UserService handles the employee directory
type UserService struct {
	repo        repository.IUserRepository
	payments    repository.IPaymentRepository
	lookupMonth string
	logger      *zap.Logger
	now         func() time.Time
}

// NewUserService creates a new user service
func NewUserService(cfg *config.Config, repo repository.IUserRepository, payments repository.IPaymentRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.L()
	}
	month := config.DefaultLookupMonth
	if cfg != nil && cfg.Payments.LookupMonth != "" {
		month = cfg.Payments.LookupMonth
	}
	return &UserService{
		repo:        repo,
		payments:    payments,
		lookupMonth: month,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]model.Document, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", ErrUpstream)
	}
	return users, nil
}

// GetByEmail returns the user with the exact email, or nil when absent
func (s *UserService) GetByEmail(ctx context.Context, email string) (model.Document, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("get user by email failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("get user: %w", ErrUpstream)
	}
	return user, nil
}

// GetBySlug resolves an object id, email or auth uid to a user
func (s *UserService) GetBySlug(ctx context.Context, raw string) (model.Document, error) {
	slug := ClassifySlug(raw)

	var (
		user model.Document
		err  error
	)
	switch slug.Kind {
	case SlugObjectID:
		user, err = s.repo.FindByID(ctx, slug.OID)
	case SlugEmail:
		user, err = s.repo.FindByEmail(ctx, slug.Raw)
	default:
		user, err = s.repo.FindByUID(ctx, slug.Raw)
	}
	if err != nil {
		s.logger.Error("fetch employee failed", zap.String("slug", raw), zap.Stringer("kind", slug.Kind), zap.Error(err))
		return nil, fmt.Errorf("fetch employee: %w", ErrUpstream)
	}
	if user == nil {
		return nil, fmt.Errorf("employee %q: %w", raw, ErrNotFound)
	}
	return user, nil
}

// Create stores a new user as submitted
func (s *UserService) Create(ctx context.Context, user model.Document) (*model.InsertResult, error) {
	res, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, fmt.Errorf("create user: %w", ErrUpstream)
	}
	return res, nil
}

// UpdateByEmail merges the given fields into the user with that email.
// Fields not present in the patch are left untouched.
func (s *UserService) UpdateByEmail(ctx context.Context, email string, patch model.Document) (*model.UpdateResult, error) {
	fields := patch.Without(model.FieldID)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty update: %w", ErrInvalidInput)
	}
	res, err := s.repo.UpdateByEmail(ctx, email, fields)
	if err != nil {
		s.logger.Error("update user failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("update user: %w", ErrUpstream)
	}
	return res, nil
}

// Deactivate soft-deactivates a user and returns the updated document.
// Not-found covers both a missing id and a write that modified nothing.
func (s *UserService) Deactivate(ctx context.Context, id string) (model.Document, error) {
	oid, err := util.ParseObjectID(id)
	if err != nil {
		return nil, fmt.Errorf("user id: %w", ErrInvalidInput)
	}

	res, err := s.repo.UpdateByID(ctx, oid, model.Document{
		model.FieldIsActive:      false,
		model.FieldDeactivatedAt: s.now(),
	})
	if err != nil {
		s.logger.Error("fire user failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("deactivate user: %w", ErrUpstream)
	}
	if res.ModifiedCount == 0 {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	user, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		s.logger.Error("reload fired user failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("reload user: %w", ErrUpstream)
	}
	s.logger.Info("user deactivated", zap.String("id", id))
	return user, nil
}

// ToggleVerification flips isVerified and looks up the user's payment for
// the configured month. A missing payment is not an error.
func (s *UserService) ToggleVerification(ctx context.Context, id string) (*model.VerificationResult, error) {
	oid, err := util.ParseObjectID(id)
	if err != nil {
		return nil, fmt.Errorf("employee id: %w", ErrInvalidInput)
	}
	s.logger.Info("toggling verification status", zap.String("id", id))

	user, err := s.repo.ToggleVerified(ctx, oid)
	if err != nil {
		s.logger.Error("toggle verification failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("toggle verification: %w", ErrUpstream)
	}
	if user == nil {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}

	payment, err := s.payments.FindByEmployeeMonth(ctx, oid.Hex(), s.lookupMonth)
	switch {
	case err != nil:
		s.logger.Warn("payment lookup failed", zap.String("id", id), zap.String("month", s.lookupMonth), zap.Error(err))
		payment = nil
	case payment == nil:
		s.logger.Info("no payment data found", zap.String("id", id), zap.String("month", s.lookupMonth))
	default:
		s.logger.Info("found payment data", zap.String("id", id), zap.String("month", s.lookupMonth))
	}

	return model.NewVerificationResult(user.Bool(model.FieldIsVerified), payment), nil
}

// RequireAdmin fails with ErrUnauthorized unless email belongs to an admin.
// Absent users, non-admins and lookup failures are not distinguished.
func (s *UserService) RequireAdmin(ctx context.Context, email string) error {
	if email == "" {
		return ErrUnauthorized
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("admin lookup failed", zap.String("email", email), zap.Error(err))
		return ErrUnauthorized
	}
	if !model.IsAdmin(user) {
		return ErrUnauthorized
	}
	return nil
}
