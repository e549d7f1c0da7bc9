package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Entity   string `gorm:"size:50;not null"` // "vegetable", "order"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "update", "delete", "place"
	Actor    string `gorm:"size:100"`
	Details  string `gorm:"type:text"`
}
