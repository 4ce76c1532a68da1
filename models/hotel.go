package models

import (
	"time"

	"gorm.io/datatypes"
)

// Hotel categories accepted by the API.
const (
	HotelBudget   = "Budget"
	HotelMidRange = "Mid-Range"
	HotelLuxury   = "Luxury"
	HotelResort   = "Resort"
	HotelBoutique = "Boutique"
)

// DefaultRoomInventory is the fallback capacity for hotels created before
// room_inventory was a real column.
const DefaultRoomInventory = 10

type Hotel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `gorm:"size:128;not null;index" json:"name"`
	Description string `gorm:"size:2000" json:"description"`

	PlaceID uint `gorm:"index" json:"placeId"`

	Location  string `gorm:"size:128;index" json:"location"`
	Address   string `gorm:"size:255" json:"address"`
	ContactNo string `gorm:"size:32" json:"contactNo"`
	Email     string `gorm:"size:128" json:"email"`
	Website   string `gorm:"size:255" json:"website"`

	Images datatypes.JSON `json:"images,omitempty"`

	PricePerNight float64 `gorm:"index" json:"pricePerNight"`
	Category      string  `gorm:"size:32;index" json:"category"`

	Amenities datatypes.JSON `json:"amenities,omitempty"`
	RoomTypes datatypes.JSON `json:"roomTypes,omitempty"`

	// Rooms available per room type and date range. Availability checks fall
	// back to DefaultRoomInventory when this is zero.
	RoomInventory int `gorm:"default:10" json:"roomInventory"`

	AverageRating float64 `gorm:"default:0" json:"averageRating"`
	TotalReviews  int     `gorm:"default:0" json:"totalReviews"`

	IsActive bool `gorm:"default:true;index" json:"isActive"`

	CreatedByID uint `gorm:"index" json:"createdById"`

	Place Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
}

// Capacity returns the effective room inventory used by availability checks.
func (h *Hotel) Capacity() int {
	if h.RoomInventory > 0 {
		return h.RoomInventory
	}
	return DefaultRoomInventory
}
