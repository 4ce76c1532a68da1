package models

import (
	"time"

	"gorm.io/datatypes"
)

// Rating target kinds.
const (
	RatingHotel    = "Hotel"
	RatingPlace    = "Place"
	RatingSubPlace = "SubPlace"
)

type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID     uint   `gorm:"index;not null" json:"userId"`
	RatingType string `gorm:"size:16;index;not null" json:"ratingType"`

	HotelID    *uint `gorm:"index" json:"hotelId,omitempty"`
	PlaceID    *uint `gorm:"index" json:"placeId,omitempty"`
	SubPlaceID *uint `gorm:"index" json:"subPlaceId,omitempty"`

	Rating  int    `gorm:"not null" json:"rating"`
	Title   string `gorm:"size:128;not null" json:"title"`
	Comment string `gorm:"size:2000;not null" json:"comment"`

	Cleanliness   int `json:"cleanliness,omitempty"`
	Service       int `json:"service,omitempty"`
	Location      int `json:"location,omitempty"`
	ValueForMoney int `json:"valueForMoney,omitempty"`

	Images datatypes.JSON `json:"images,omitempty"`

	HelpfulCount  int    `gorm:"default:0" json:"helpfulCount"`
	IsApproved    bool   `gorm:"default:true;index" json:"isApproved"`
	IsReported    bool   `gorm:"default:false" json:"isReported"`
	AdminResponse string `gorm:"size:2000" json:"adminResponse"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
