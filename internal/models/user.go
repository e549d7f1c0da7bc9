package models

import "time"

type UserRole string

const (
	RoleProducer UserRole = "producer"
	RoleEmployee UserRole = "employee"
)

type User struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	EmployeeID string   `gorm:"uniqueIndex;size:50;not null"`
	Name       string   `gorm:"size:100;not null"`
	Role       UserRole `gorm:"type:varchar(20);not null"`
}
