package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gigboard/internal/model"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(entry *model.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create audit log failed: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) ListByActorID(actorID uint, limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var entries []model.AuditLog
	if err := r.db.Where("actor_id = ?", actorID).Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list audit logs failed: %w", err)
	}
	return entries, nil
}
