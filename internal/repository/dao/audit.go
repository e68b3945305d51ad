package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	AdminID   uint   `gorm:"not null;index"`
	Action    string `gorm:"not null"`
	Entity    string `gorm:"not null;index"`
	EntityKey string `gorm:"not null"`
	OldValue  string
	NewValue  string

	CreatedAt time.Time `gorm:"not null"`
}

type AuditLogDAO struct {
	db *gorm.DB
}

func NewAuditLogDAO(db *gorm.DB) *AuditLogDAO {
	return &AuditLogDAO{
		db: db,
	}
}

func (d *AuditLogDAO) Insert(ctx context.Context, log AuditLog) (AuditLog, error) {
	result := d.db.WithContext(ctx).Create(&log)
	if result.Error != nil {
		return AuditLog{}, result.Error
	}

	return log, nil
}

func (d *AuditLogDAO) FindAll(ctx context.Context, entity string, limit, offset int) ([]AuditLog, error) {
	var logs []AuditLog

	query := d.db.WithContext(ctx)
	if entity != "" {
		query = query.Where("entity = ?", entity)
	}

	result := query.Order("id DESC").Limit(limit).Offset(offset).Find(&logs)
	if result.Error != nil {
		return nil, result.Error
	}

	return logs, nil
}
