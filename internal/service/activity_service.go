package service

import (
	"context"

	"vegetable-orders/internal/database"
	"vegetable-orders/internal/models"

	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	return database.ListAuditLogs(s.db.WithContext(ctx), limit)
}
