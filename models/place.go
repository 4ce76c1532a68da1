package models

import "time"

type Place struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string  `gorm:"size:128;not null" json:"name"`
	Description string  `gorm:"size:2000;not null" json:"description"`
	Location    string  `gorm:"size:128;not null" json:"location"`
	Image       string  `gorm:"size:255" json:"image"`
	Price       float64 `gorm:"default:0" json:"price"`

	CreatedByID uint `gorm:"index" json:"createdById"`
}
