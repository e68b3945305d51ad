package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/palpita/lottery-api/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log domain.AuditLog) (domain.AuditLog, error)
	FindAll(ctx context.Context, entity string, limit, offset int) ([]domain.AuditLog, error)
}

type AuditService struct {
	repo AuditLogRepository
}

func NewAuditService(repo AuditLogRepository) *AuditService {
	return &AuditService{
		repo: repo,
	}
}

// RecordChange writes one audit entry. Failures are logged and swallowed so
// an audit outage never blocks the configuration change it describes.
func (s *AuditService) RecordChange(ctx context.Context, log domain.AuditLog) {
	if _, err := s.repo.Create(ctx, log); err != nil {
		zap.L().Warn("audit log write failed",
			zap.String("entity", log.Entity),
			zap.String("entity_key", log.EntityKey),
			zap.String("action", string(log.Action)),
			zap.Error(err),
		)
	}
}

func (s *AuditService) List(ctx context.Context, entity string, limit, offset int) ([]domain.AuditLog, error) {
	logs, err := s.repo.FindAll(ctx, entity, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return logs, nil
}
