package repository

import (
	"context"
	"fmt"

	"github.com/palpita/lottery-api/internal/domain"
	"github.com/palpita/lottery-api/internal/repository/dao"
)

type AuditLogDAO interface {
	Insert(ctx context.Context, log dao.AuditLog) (dao.AuditLog, error)
	FindAll(ctx context.Context, entity string, limit, offset int) ([]dao.AuditLog, error)
}

type AuditLogRepository struct {
	dao AuditLogDAO
}

func NewAuditLogRepository(dao AuditLogDAO) *AuditLogRepository {
	return &AuditLogRepository{
		dao: dao,
	}
}

func (r *AuditLogRepository) daoToDomain(l dao.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		ID:        l.ID,
		AdminID:   l.AdminID,
		Action:    domain.AuditAction(l.Action),
		Entity:    l.Entity,
		EntityKey: l.EntityKey,
		OldValue:  l.OldValue,
		NewValue:  l.NewValue,
		CreatedAt: l.CreatedAt,
	}
}

func (r *AuditLogRepository) Create(ctx context.Context, log domain.AuditLog) (domain.AuditLog, error) {
	created, err := r.dao.Insert(ctx, dao.AuditLog{
		AdminID:   log.AdminID,
		Action:    string(log.Action),
		Entity:    log.Entity,
		EntityKey: log.EntityKey,
		OldValue:  log.OldValue,
		NewValue:  log.NewValue,
	})
	if err != nil {
		return domain.AuditLog{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AuditLogRepository) FindAll(ctx context.Context, entity string, limit, offset int) ([]domain.AuditLog, error) {
	logs, err := r.dao.FindAll(ctx, entity, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.AuditLog, len(logs))
	for i, l := range logs {
		result[i] = r.daoToDomain(l)
	}

	return result, nil
}
