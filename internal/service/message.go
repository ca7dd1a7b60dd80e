package service

import (
	"context"
	"fmt"

	"worktrack/internal/model"
	"worktrack/internal/repository"

	"go.uber.org/zap"
)

// MessageService exposes contact messages
type MessageService struct {
	repo   repository.IMessageRepository
	logger *zap.Logger
}

func NewMessageService(repo repository.IMessageRepository, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.L()
	}
	return &MessageService{repo: repo, logger: logger}
}

// List returns all messages
func (s *MessageService) List(ctx context.Context) ([]model.Document, error) {
	messages, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list messages failed", zap.Error(err))
		return nil, fmt.Errorf("list messages: %w", ErrUpstream)
	}
	return messages, nil
}
