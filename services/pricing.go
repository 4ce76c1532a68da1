package services

import (
	"time"

	"tourism-backend/models"
)

// TaxRate is the GST applied to every booking subtotal.
const TaxRate = 0.18

// Quote is the server-side pricing of a stay. Client-supplied totals are
// never trusted; booking creation always recomputes from raw inputs.
type Quote struct {
	NumberOfNights int
	TotalAmount    float64
	TaxAmount      float64
	FinalAmount    float64
}

// ComputeQuote validates the date pair and derives nights, subtotal, tax
// and final amount. Check-in must be strictly in the future at creation
// time and check-out strictly after check-in.
func ComputeQuote(checkIn, checkOut time.Time, pricePerNight float64, rooms int, now time.Time) (Quote, error) {
	if !checkIn.After(now) {
		return Quote{}, validationf("check-in date must be in the future")
	}
	if !checkOut.After(checkIn) {
		return Quote{}, validationf("check-out date must be after check-in date")
	}
	if pricePerNight < 0 {
		return Quote{}, validationf("price per night cannot be negative")
	}

	nights := models.NightsBetween(checkIn, checkOut)
	total := pricePerNight * float64(nights) * float64(rooms)
	tax := total * TaxRate

	return Quote{
		NumberOfNights: nights,
		TotalAmount:    total,
		TaxAmount:      tax,
		FinalAmount:    total + tax,
	}, nil
}
