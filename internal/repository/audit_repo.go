package repository

import (
	"context"

	"gorm.io/gorm"

	"gachastore/internal/domain"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]domain.AuditLog, int64, error) {
	var entries []domain.AuditLog
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.AuditLog{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error

	return entries, total, err
}
