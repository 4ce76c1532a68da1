package models

import (
	"time"

	"gorm.io/datatypes"
)

// Package is a multi-day tour product. Itinerary, highlights and inclusion
// lists are stored as JSON documents rather than child tables.
type Package struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `gorm:"size:128;not null" json:"name"`
	Description string `gorm:"size:4000" json:"description"`
	Category    string `gorm:"size:32;index" json:"category"`
	Difficulty  string `gorm:"size:32" json:"difficulty"`

	Duration        int     `json:"duration"`
	Price           float64 `gorm:"index" json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	Itinerary  datatypes.JSON `json:"itinerary,omitempty"`
	Highlights datatypes.JSON `json:"highlights,omitempty"`
	Included   datatypes.JSON `json:"included,omitempty"`
	Excluded   datatypes.JSON `json:"excluded,omitempty"`
	Images     datatypes.JSON `json:"images,omitempty"`
	CoverImage string         `gorm:"size:255" json:"coverImage"`

	AvailableSlots int `gorm:"default:0" json:"availableSlots"`
	BookedSlots    int `gorm:"default:0" json:"bookedSlots"`

	CancellationPolicy string `gorm:"size:2000" json:"cancellationPolicy"`

	IsActive bool `gorm:"default:true;index" json:"isActive"`

	CreatedByID uint `gorm:"index" json:"createdById"`
}
