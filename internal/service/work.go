package service

import (
	"context"
	"fmt"

	"worktrack/internal/model"
	"worktrack/internal/repository"

	"go.uber.org/zap"
)

// WorkService handles work records
type WorkService struct {
	repo   repository.IWorkRecordRepository
	logger *zap.Logger
}

// NewWorkService creates a new work record service
func NewWorkService(repo repository.IWorkRecordRepository, logger *zap.Logger) *WorkService {
	if logger == nil {
		logger = zap.L()
	}
	return &WorkService{repo: repo, logger: logger}
}

// List returns all work records
func (s *WorkService) List(ctx context.Context) ([]model.Document, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list work records failed", zap.Error(err))
		return nil, fmt.Errorf("list work records: %w", ErrUpstream)
	}
	return records, nil
}

// ListByEmail returns the work records logged under email
func (s *WorkService) ListByEmail(ctx context.Context, email string) ([]model.Document, error) {
	records, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("list work records failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("list work records: %w", ErrUpstream)
	}
	return records, nil
}

// Create stores a work record as submitted
func (s *WorkService) Create(ctx context.Context, record model.Document) (*model.InsertResult, error) {
	res, err := s.repo.Create(ctx, record)
	if err != nil {
		s.logger.Error("create work record failed", zap.Error(err))
		return nil, fmt.Errorf("create work record: %w", ErrUpstream)
	}
	return res, nil
}
