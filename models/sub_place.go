package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubPlace struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PlaceID uint `gorm:"index;not null" json:"placeId"`

	Name        string  `gorm:"size:128;not null" json:"name"`
	Description string  `gorm:"size:2000;not null" json:"description"`
	Location    string  `gorm:"size:128;not null" json:"location"`
	Image       string  `gorm:"size:255" json:"image"`
	EntryFee    float64 `gorm:"default:0" json:"entryFee"`

	OpenTime        string `gorm:"size:32;default:'9:00 AM'" json:"openTime"`
	CloseTime       string `gorm:"size:32;default:'6:00 PM'" json:"closeTime"`
	BestTimeToVisit string `gorm:"size:128" json:"bestTimeToVisit"`

	Features datatypes.JSON `json:"features,omitempty"`

	CreatedByID uint `gorm:"index" json:"createdById"`

	Place Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
}
