package database

import (
	"fmt"

	"vegetable-orders/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog appends an activity entry using db, which is usually the
// transaction that made the change.
func CreateAuditLog(db *gorm.DB, entity string, entityID uint, action, actor, details string) error {
	record := models.AuditLog{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Actor:    actor,
		Details:  details,
	}
	if err := db.Create(&record).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// ListAuditLogs returns the newest entries first.
func ListAuditLogs(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := db.Order("id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
