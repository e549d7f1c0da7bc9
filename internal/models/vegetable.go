package models

import "time"

// Vegetable is a catalog entry. Stock is only decreased by placing an order.
type Vegetable struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name        string `gorm:"size:100;not null"`
	Price       int    `gorm:"not null"` // integer currency units
	Description string `gorm:"type:text"`
	Stock       int    `gorm:"not null;check:stock >= 0"`
	Image       string `gorm:"size:255"` // file name inside the upload dir, empty if none
	ProducerID  uint   `gorm:"index;not null"`
}

func (v Vegetable) HasImage() bool { return v.Image != "" }
